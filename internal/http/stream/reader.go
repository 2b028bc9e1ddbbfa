package stream

import (
	"errors"
	"io"
)

// ReadMessage reads until the buffer holds a complete frame, the source is
// exhausted, or the message grows past the size limit. Body bytes that arrive
// after the frame is complete are not waited for.
func (r *reader) ReadMessage() ([]byte, error) {
	chunk := make([]byte, r.chunkSize)
	buf := make([]byte, 0, r.chunkSize)

	for {
		n, err := r.src.Read(chunk)
		if n > 0 {
			if len(buf)+n > r.maxSize {
				return nil, ErrMessageTooLarge
			}
			buf = append(buf, chunk[:n]...)
			if Complete(buf) {
				return buf, nil
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if len(buf) == 0 {
				return nil, io.EOF
			}
			return buf, nil
		}
	}
}
