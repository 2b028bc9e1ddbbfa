package transport

import (
	"errors"
	"log"
	"net"
)

type Transport interface {
	Listen() (net.Listener, error)
	Serve(listener net.Listener) error
}

type Handler interface {
	Handle(conn net.Conn, listener string)
}

// serve accepts connections until the listener is closed. A failed accept is
// logged and does not stop the loop.
func serve(listener net.Listener, handler Handler, name string) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("Error accepting %s connection: %v", name, err)
			continue
		}
		go handler.Handle(conn, name)
	}
}
