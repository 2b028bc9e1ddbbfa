package middleware

import (
	"strconv"

	"minihttp/internal/http/message"
)

type ContentLength struct{}

func NewContentLength() *ContentLength {
	return &ContentLength{}
}

func (cl *ContentLength) HandleResponse(resp message.Response) (message.Response, error) {
	return resp.WithHeader("Content-Length", strconv.Itoa(len(resp.Body))), nil
}
