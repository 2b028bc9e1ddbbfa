package stream

import (
	"errors"
	"io"
)

const DefaultChunkSize = 512

var CRLF = []byte{0x0D, 0x0A}

var ErrMessageTooLarge = errors.New("message exceeds maximum size")

// Reader pulls one framed message off a connection.
type Reader interface {
	ReadMessage() ([]byte, error)
}

type reader struct {
	src       io.Reader
	chunkSize int
	maxSize   int
}

// New returns a Reader that reads at most chunkSize bytes per call to src and
// refuses messages longer than maxSize.
func New(src io.Reader, chunkSize, maxSize int) Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if maxSize < chunkSize {
		maxSize = chunkSize
	}
	return &reader{
		src:       src,
		chunkSize: chunkSize,
		maxSize:   maxSize,
	}
}
