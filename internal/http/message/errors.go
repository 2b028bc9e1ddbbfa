package message

import (
	"errors"
	"fmt"
)

var (
	ErrMethodParse   = errors.New("invalid method")
	ErrURIParse      = errors.New("invalid request target")
	ErrHeaderParse   = errors.New("invalid header line")
	ErrRequestParse  = errors.New("invalid request")
	ErrResponseParse = errors.New("invalid response")
)

// ParseError is returned by every parser in this package. Kind is one of the
// Err*Parse sentinels; Offset is the byte position in the parsed input where
// the failure was detected; Cause holds the nested failure, if any.
type ParseError struct {
	Kind   error
	Offset int
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newParseError(kind error, offset int, reason string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Reason: reason}
}

func wrapParseError(kind error, offset int, cause error) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Cause: cause}
}
