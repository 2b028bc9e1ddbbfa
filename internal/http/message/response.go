package message

import (
	"strconv"
	"strings"
)

const (
	StatusOK              = 200
	StatusBadRequest      = 400
	StatusRequestTimeout  = 408
	StatusPayloadTooLarge = 413
	StatusInternalError   = 500
)

var statusText = map[int]string{
	StatusOK:              "OK",
	StatusBadRequest:      "Bad Request",
	StatusRequestTimeout:  "Request Timeout",
	StatusPayloadTooLarge: "Payload Too Large",
	StatusInternalError:   "Internal Server Error",
}

// StatusText returns the reason phrase for the codes this server emits, or
// the empty string for any other code.
func StatusText(code int) string {
	return statusText[code]
}

type Response struct {
	Code    int
	Message string
	Header  Header
	Body    string
}

// NewResponse builds a response with the canonical reason phrase for code.
func NewResponse(code int, body string) Response {
	return Response{
		Code:    code,
		Message: StatusText(code),
		Body:    body,
	}
}

// String renders the response in wire format.
func (r Response) String() string {
	var b strings.Builder
	b.WriteString(protoVersion)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Code))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(crlf)
	r.Header.writeTo(&b)
	b.WriteString(crlf)
	b.WriteString(r.Body)
	return b.String()
}

func (r Response) Bytes() []byte {
	return []byte(r.String())
}

func (r Response) WithHeader(key, value string) Response {
	r.Header = r.Header.Set(key, value)
	return r
}

func (r Response) Equal(other Response) bool {
	return r.Code == other.Code &&
		r.Message == other.Message &&
		r.Header.Equal(other.Header) &&
		r.Body == other.Body
}
