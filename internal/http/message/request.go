package message

import "strings"

// Request is a parsed request. The zero Header is an empty header.
type Request struct {
	Method Method
	URI    URI
	Header Header
	Body   string
}

// String renders the request in wire format.
func (r Request) String() string {
	var b strings.Builder
	b.WriteString(r.Method.String())
	b.WriteByte(' ')
	b.WriteString(r.URI.String())
	b.WriteByte(' ')
	b.WriteString(protoVersion)
	b.WriteString(crlf)
	r.Header.writeTo(&b)
	b.WriteString(crlf)
	b.WriteString(r.Body)
	return b.String()
}

func (r Request) Bytes() []byte {
	return []byte(r.String())
}

// WithHeader returns a copy of r with the header key set to value.
func (r Request) WithHeader(key, value string) Request {
	r.Header = r.Header.Set(key, value)
	return r
}

// Equal compares two requests, treating query parameters and headers as
// unordered sets of pairs.
func (r Request) Equal(other Request) bool {
	return r.Method == other.Method &&
		r.URI.Equal(other.URI) &&
		r.Header.Equal(other.Header) &&
		r.Body == other.Body
}
