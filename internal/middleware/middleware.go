package middleware

import (
	"net"

	"minihttp/internal/http/message"
)

type RequestMiddleware interface {
	HandleRequest(req message.Request, remote net.Addr) (message.Request, error)
}

type ResponseMiddleware interface {
	HandleResponse(resp message.Response) (message.Response, error)
}

// ApplyRequest runs mws in order, stopping at the first error.
func ApplyRequest(req message.Request, remote net.Addr, mws ...RequestMiddleware) (message.Request, error) {
	var err error
	for _, mw := range mws {
		if req, err = mw.HandleRequest(req, remote); err != nil {
			return message.Request{}, err
		}
	}
	return req, nil
}

// ApplyResponse runs mws in order, stopping at the first error.
func ApplyResponse(resp message.Response, mws ...ResponseMiddleware) (message.Response, error) {
	var err error
	for _, mw := range mws {
		if resp, err = mw.HandleResponse(resp); err != nil {
			return message.Response{}, err
		}
	}
	return resp, nil
}
