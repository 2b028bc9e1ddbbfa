package transport

import (
	"errors"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"minihttp/internal/config"
	"minihttp/internal/html"
	"minihttp/internal/http/message"
	"minihttp/internal/http/stream"
	"minihttp/internal/metrics"
	"minihttp/internal/middleware"
	"minihttp/internal/version"

	"github.com/google/uuid"
)

type handler struct {
	config  config.Config
	metrics metrics.Metrics
	page    message.Response
	reqMW   []middleware.RequestMiddleware
	respMW  []middleware.ResponseMiddleware
}

// NewHandler returns the connection handler shared by all listeners. Every
// well-formed request is answered with the same greeting page.
func NewHandler(cfg config.Config, m metrics.Metrics) Handler {
	respMW := []middleware.ResponseMiddleware{middleware.NewContentLength()}
	switch name := cfg.ServerName(); name {
	case "":
	case "auto":
		respMW = append(respMW, middleware.NewServerName(version.ServerToken()))
	default:
		respMW = append(respMW, middleware.NewServerName(name))
	}

	return &handler{
		config:  cfg,
		metrics: m,
		page:    message.NewResponse(message.StatusOK, html.Greeting().String()),
		reqMW:   []middleware.RequestMiddleware{middleware.NewForwardedFor()},
		respMW:  respMW,
	}
}

func (h *handler) Handle(conn net.Conn, listener string) {
	start := time.Now()
	id := uuid.NewString()
	h.metrics.ConnectionAccepted(listener)
	defer func() {
		h.closeConnection(id, conn)
		h.metrics.ObserveHandling(time.Since(start))
	}()

	if err := conn.SetReadDeadline(start.Add(h.config.ReadTimeout())); err != nil {
		log.Printf("[%s] Failed to set read deadline: %v", id, err)
	}

	raw, err := stream.New(conn, h.config.BufferSize(), h.config.MaxMessageSize()).ReadMessage()
	if err != nil {
		h.rejectRead(id, conn, err)
		return
	}

	req, err := message.ParseRequest(strings.ToValidUTF8(string(raw), "\uFFFD"))
	if err != nil {
		log.Printf("[%s] Rejecting malformed request from %s: %v", id, conn.RemoteAddr(), err)
		h.metrics.ParseFailed(failureKind(err))
		h.write(id, conn, message.NewResponse(message.StatusBadRequest, ""))
		return
	}
	h.metrics.RequestParsed(req.Method.String())

	if enriched, err := middleware.ApplyRequest(req, conn.RemoteAddr(), h.reqMW...); err != nil {
		log.Printf("[%s] Error applying request middleware: %v", id, err)
	} else {
		req = enriched
	}

	resp, err := middleware.ApplyResponse(h.page, h.respMW...)
	if err != nil {
		log.Printf("[%s] Error applying response middleware: %v", id, err)
		resp = message.NewResponse(message.StatusInternalError, "")
	}

	h.write(id, conn, resp)
	log.Printf("[%s] %s request from %s:\n%s", id, listener, conn.RemoteAddr(), req)
}

func (h *handler) rejectRead(id string, conn net.Conn, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF):
		log.Printf("[%s] Connection from %s closed before sending a request", id, conn.RemoteAddr())
	case errors.Is(err, stream.ErrMessageTooLarge):
		log.Printf("[%s] Request from %s exceeds %d bytes", id, conn.RemoteAddr(), h.config.MaxMessageSize())
		h.metrics.ParseFailed("too_large")
		h.write(id, conn, message.NewResponse(message.StatusPayloadTooLarge, ""))
	case errors.As(err, &netErr) && netErr.Timeout():
		log.Printf("[%s] Timed out reading request from %s", id, conn.RemoteAddr())
		h.metrics.ParseFailed("timeout")
		h.write(id, conn, message.NewResponse(message.StatusRequestTimeout, ""))
	default:
		log.Printf("[%s] Error reading request from %s: %v", id, conn.RemoteAddr(), err)
	}
}

func (h *handler) write(id string, conn net.Conn, resp message.Response) {
	n, err := conn.Write(resp.Bytes())
	h.metrics.ResponseWritten(resp.Code, n)
	if err != nil {
		log.Printf("[%s] Failed to write %d response: %v", id, resp.Code, err)
	}
}

func (h *handler) closeConnection(id string, conn net.Conn) {
	err := conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("[%s] Error closing connection: %v", id, err)
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, message.ErrMethodParse):
		return "method"
	case errors.Is(err, message.ErrURIParse):
		return "uri"
	case errors.Is(err, message.ErrHeaderParse):
		return "header"
	default:
		return "request"
	}
}
