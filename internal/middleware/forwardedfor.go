package middleware

import (
	"net"

	"minihttp/internal/http/message"
)

type ForwardedFor struct{}

func NewForwardedFor() *ForwardedFor {
	return &ForwardedFor{}
}

func (ff *ForwardedFor) HandleRequest(req message.Request, remote net.Addr) (message.Request, error) {
	host, _, err := net.SplitHostPort(remote.String())
	if err != nil {
		return message.Request{}, err
	}
	return req.WithHeader("X-Forwarded-For", host), nil
}
