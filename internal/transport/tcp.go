package transport

import (
	"log"
	"net"
)

type tcp struct {
	host    string
	port    string
	handler Handler
}

func NewTCPServer(host, port string, handler Handler) Transport {
	return &tcp{
		host:    host,
		port:    port,
		handler: handler,
	}
}

func (tt *tcp) Listen() (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(tt.host, tt.port))
}

func (tt *tcp) Serve(listener net.Listener) error {
	log.Printf("TCP server is listening on %s", listener.Addr())
	return serve(listener, tt.handler, "tcp")
}
