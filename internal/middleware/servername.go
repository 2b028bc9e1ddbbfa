package middleware

import "minihttp/internal/http/message"

type ServerName struct {
	name string
}

func NewServerName(name string) *ServerName {
	return &ServerName{name: name}
}

func (sn *ServerName) HandleResponse(resp message.Response) (message.Response, error) {
	return resp.WithHeader("Server", sn.name), nil
}
