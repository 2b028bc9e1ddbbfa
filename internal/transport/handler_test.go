package transport

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"minihttp/internal/html"
	"minihttp/internal/http/message"
	"minihttp/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) ConnectionAccepted(listener string) { m.Called(listener) }
func (m *mockMetrics) RequestParsed(method string)        { m.Called(method) }
func (m *mockMetrics) ParseFailed(kind string)            { m.Called(kind) }
func (m *mockMetrics) ResponseWritten(code int, bytes int) {
	m.Called(code, bytes)
}
func (m *mockMetrics) ObserveHandling(d time.Duration) { m.Called(d) }
func (m *mockMetrics) Handler() http.Handler          { return m.Called().Get(0).(http.Handler) }

func newMockMetrics() *mockMetrics {
	mm := new(mockMetrics)
	mm.On("ConnectionAccepted", mock.Anything).Maybe()
	mm.On("ResponseWritten", mock.Anything, mock.Anything).Maybe()
	mm.On("ObserveHandling", mock.Anything).Maybe()
	return mm
}

func exchange(t *testing.T, h Handler, payload []byte) string {
	t.Helper()

	server, client := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		h.Handle(server, "tcp")
		close(done)
	}()
	if payload != nil {
		go func() {
			_, _ = client.Write(payload)
		}()
	}

	resp, err := io.ReadAll(client)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return")
	}
	return string(resp)
}

func greetingResponse(extra ...string) string {
	body := html.Greeting().String()
	resp := message.NewResponse(message.StatusOK, body).WithHeader("Content-Length", strconv.Itoa(len(body)))
	for i := 0; i+1 < len(extra); i += 2 {
		resp = resp.WithHeader(extra[i], extra[i+1])
	}
	return resp.String()
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name         string
		serverName   string
		expectRespMW int
	}{
		{"no server name", "", 1},
		{"explicit server name", "edge-1", 2},
		{"auto server name", "auto", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newHandlerConfig(tt.serverName), metrics.New()).(*handler)
			assert.Len(t, h.respMW, tt.expectRespMW)
			assert.Len(t, h.reqMW, 1)
			assert.Equal(t, message.StatusOK, h.page.Code)
			assert.Equal(t, html.Greeting().String(), h.page.Body)
		})
	}
}

func TestHandle_WellFormedRequest(t *testing.T) {
	mm := newMockMetrics()
	mm.On("RequestParsed", "GET").Once()
	h := NewHandler(newHandlerConfig(""), mm)

	resp := exchange(t, h, []byte("GET /index.html?user=test HTTP/1.1\r\nUser-Agent: Rust\r\nHello, world!"))

	assert.Equal(t, greetingResponse(), resp)
	mm.AssertExpectations(t)
	mm.AssertCalled(t, "ConnectionAccepted", "tcp")
	mm.AssertCalled(t, "ResponseWritten", message.StatusOK, len(resp))
}

func TestHandle_ServerName(t *testing.T) {
	tests := []struct {
		name       string
		serverName string
		expect     string
	}{
		{"explicit", "edge-1", "edge-1"},
		{"auto", "auto", "minihttp/dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newHandlerConfig(tt.serverName), metrics.New())

			raw := exchange(t, h, []byte("HEAD / HTTP/1.1\r\nHost: a\r\n"))

			resp, err := message.ParseResponse(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, resp.Header.Get("Server"))
			assert.Equal(t, greetingResponse("Server", tt.expect), raw)
		})
	}
}

func TestHandle_MalformedRequests(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		expectKind string
	}{
		{"bad version", "GET / HTTX/1.1\r\nA: 1\r\n", "request"},
		{"unknown method", "FETCH / HTTP/1.1\r\nA: 1\r\n", "method"},
		{"bad query", "GET /?k=v=w HTTP/1.1\r\nA: 1\r\n", "uri"},
		{"bad header", "GET / HTTP/1.1\r\nbroken\r\n", "header"},
		{"missing second space", "GET /index.html\r\nA: 1\r\n", "request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := newMockMetrics()
			mm.On("ParseFailed", tt.expectKind).Once()
			h := NewHandler(newHandlerConfig(""), mm)

			resp := exchange(t, h, []byte(tt.payload))

			assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n\r\n", resp)
			mm.AssertExpectations(t)
			mm.AssertNotCalled(t, "RequestParsed", mock.Anything)
		})
	}
}

func TestHandle_IncompleteRequestTimesOut(t *testing.T) {
	mc := new(MockConfig)
	mc.On("BufferSize").Return(512)
	mc.On("MaxMessageSize").Return(4096)
	mc.On("ReadTimeout").Return(50 * time.Millisecond)
	mc.On("ServerName").Return("")

	mm := newMockMetrics()
	mm.On("ParseFailed", "timeout").Once()
	h := NewHandler(mc, mm)

	resp := exchange(t, h, []byte("GET / HTTP/1.1"))

	assert.Equal(t, "HTTP/1.1 408 Request Timeout\r\n\r\n", resp)
	mm.AssertExpectations(t)
}

func TestHandle_InvalidUTF8IsReplaced(t *testing.T) {
	mm := newMockMetrics()
	mm.On("RequestParsed", "POST").Once()
	h := NewHandler(newHandlerConfig(""), mm)

	resp := exchange(t, h, []byte("POST /\xff\xfe HTTP/1.1\r\nX: \xc3\r\n"))

	assert.Equal(t, greetingResponse(), resp)
	mm.AssertExpectations(t)
}

func TestHandle_TooLarge(t *testing.T) {
	mm := newMockMetrics()
	mm.On("ParseFailed", "too_large").Once()
	h := NewHandler(newHandlerConfig(""), mm)

	payload := make([]byte, 8192)
	for i := range payload {
		payload[i] = 'a'
	}

	resp := exchange(t, h, payload)

	assert.Equal(t, "HTTP/1.1 413 Payload Too Large\r\n\r\n", resp)
	mm.AssertExpectations(t)
}

func TestHandle_Timeout(t *testing.T) {
	mc := new(MockConfig)
	mc.On("BufferSize").Return(512)
	mc.On("MaxMessageSize").Return(4096)
	mc.On("ReadTimeout").Return(50 * time.Millisecond)
	mc.On("ServerName").Return("")

	mm := newMockMetrics()
	mm.On("ParseFailed", "timeout").Once()
	h := NewHandler(mc, mm)

	resp := exchange(t, h, nil)

	assert.Equal(t, "HTTP/1.1 408 Request Timeout\r\n\r\n", resp)
	mm.AssertExpectations(t)
}

func TestHandle_ClientClosesEarly(t *testing.T) {
	mm := newMockMetrics()
	h := NewHandler(newHandlerConfig(""), mm)

	server, client := net.Pipe()
	require.NoError(t, client.Close())

	done := make(chan struct{})
	go func() {
		h.Handle(server, "tcp")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return")
	}
	mm.AssertNotCalled(t, "ResponseWritten", mock.Anything, mock.Anything)
	mm.AssertNotCalled(t, "ParseFailed", mock.Anything)
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		raw    string
		expect string
	}{
		{"get / HTTP/1.1\r\n\r\n", "method"},
		{"GET /?a HTTP/1.1\r\n\r\n", "uri"},
		{"GET / HTTP/1.1\r\nx\r\n", "header"},
		{"GET / FTP/1.1\r\n\r\n", "request"},
	}

	for _, tt := range tests {
		_, err := message.ParseRequest(tt.raw)
		require.Error(t, err)
		assert.Equal(t, tt.expect, failureKind(err))
	}
}
