package stream

import "bytes"

// Complete reports whether buf holds both the CRLF that ends the start line
// and the CRLF that ends the header block.
func Complete(buf []byte) bool {
	lineEnd := bytes.Index(buf, CRLF)
	if lineEnd == -1 {
		return false
	}
	return bytes.Contains(buf[lineEnd+len(CRLF):], CRLF)
}
