package message

import (
	"errors"
	"strconv"
	"strings"
)

const (
	crlf          = "\r\n"
	versionPrefix = "HTTP/"
	protoVersion  = "HTTP/1.1"
)

// ParseRequest parses a request of the form
//
//	<METHOD> <target> HTTP/<version>\r\n<header>[\n<header>...]\r\n<body>
//
// The first CRLF in raw ends the request line and the next CRLF ends the
// header block. Everything after that belongs to the body.
func ParseRequest(raw string) (Request, error) {
	methodEnd := strings.IndexByte(raw, ' ')
	if methodEnd == -1 {
		return Request{}, newParseError(ErrRequestParse, 0, "missing method")
	}

	method, err := ParseMethod(raw[:methodEnd])
	if err != nil {
		return Request{}, wrapParseError(ErrRequestParse, 0, err)
	}

	targetStart := methodEnd + 1
	targetLen := strings.IndexByte(raw[targetStart:], ' ')
	if targetLen == -1 {
		return Request{}, newParseError(ErrRequestParse, targetStart, "missing version")
	}
	if targetLen == 0 {
		return Request{}, newParseError(ErrRequestParse, targetStart, "empty request target")
	}
	targetEnd := targetStart + targetLen

	uri, err := ParseURI(raw[targetStart:targetEnd])
	if err != nil {
		return Request{}, wrapParseError(ErrRequestParse, nestedOffset(targetStart, err), err)
	}

	if !strings.HasPrefix(raw[targetEnd+1:], versionPrefix) {
		return Request{}, newParseError(ErrRequestParse, targetEnd+1, "version must start with "+versionPrefix)
	}

	header, body, err := splitFrame(raw, ErrRequestParse)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Method: method,
		URI:    uri,
		Header: header,
		Body:   body,
	}, nil
}

// ParseResponse parses a response framed the same way as a request, with a
// status line of the form HTTP/<version> <code> <message>.
func ParseResponse(raw string) (Response, error) {
	versionEnd := strings.IndexByte(raw, ' ')
	if versionEnd == -1 {
		return Response{}, newParseError(ErrResponseParse, 0, "missing version")
	}
	if !strings.HasPrefix(raw[:versionEnd], versionPrefix) {
		return Response{}, newParseError(ErrResponseParse, 0, "version must start with "+versionPrefix)
	}

	codeStart := versionEnd + 1
	codeLen := strings.IndexByte(raw[codeStart:], ' ')
	if codeLen != 3 {
		return Response{}, newParseError(ErrResponseParse, codeStart, "status code must be three digits")
	}
	codeEnd := codeStart + codeLen
	code, err := strconv.Atoi(raw[codeStart:codeEnd])
	if err != nil || code < 100 {
		return Response{}, newParseError(ErrResponseParse, codeStart, "status code must be three digits")
	}

	lineEnd := strings.Index(raw, crlf)
	if lineEnd == -1 || lineEnd <= codeEnd {
		return Response{}, newParseError(ErrResponseParse, codeEnd, "no CRLF after status line")
	}

	header, body, err := splitFrame(raw, ErrResponseParse)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Code:    code,
		Message: raw[codeEnd+1 : lineEnd],
		Header:  header,
		Body:    body,
	}, nil
}

// splitFrame locates the two CRLFs that bound the header block and returns
// the parsed header and the remaining body.
func splitFrame(raw string, kind error) (Header, string, error) {
	lineEnd := strings.Index(raw, crlf)
	if lineEnd == -1 {
		return Header{}, "", newParseError(kind, len(raw), "no CRLF after start line")
	}

	headerStart := lineEnd + len(crlf)
	blockLen := strings.Index(raw[headerStart:], crlf)
	if blockLen == -1 {
		return Header{}, "", newParseError(kind, headerStart, "no CRLF after header block")
	}
	headerEnd := headerStart + blockLen

	header, err := ParseHeader(raw[headerStart:headerEnd])
	if err != nil {
		return Header{}, "", wrapParseError(kind, nestedOffset(headerStart, err), err)
	}

	return header, raw[headerEnd+len(crlf):], nil
}

func nestedOffset(base int, err error) int {
	var pe *ParseError
	if errors.As(err, &pe) {
		return base + pe.Offset
	}
	return base
}
