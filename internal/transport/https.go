package transport

import (
	"crypto/tls"
	"log"
	"net"
)

type https struct {
	host      string
	port      string
	tlsConfig *tls.Config
	handler   Handler
}

func NewHTTPSServer(host, port string, handler Handler, tlsConfig *tls.Config) Transport {
	return &https{
		host:      host,
		port:      port,
		tlsConfig: tlsConfig,
		handler:   handler,
	}
}

func (ht *https) Listen() (net.Listener, error) {
	return tls.Listen("tcp", net.JoinHostPort(ht.host, ht.port), ht.tlsConfig)
}

func (ht *https) Serve(listener net.Listener) error {
	log.Printf("TLS server is listening on %s", listener.Addr())
	return serve(listener, ht.handler, "tls")
}
