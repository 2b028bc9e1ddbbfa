package message

type Method uint8

const (
	GET Method = iota + 1
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

// Methods returns the closed set of recognized methods in declaration order.
func Methods() []Method {
	return []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}
}

// ParseMethod matches token case-sensitively against the recognized set.
func ParseMethod(token string) (Method, error) {
	switch token {
	case "GET":
		return GET, nil
	case "HEAD":
		return HEAD, nil
	case "POST":
		return POST, nil
	case "PUT":
		return PUT, nil
	case "DELETE":
		return DELETE, nil
	case "CONNECT":
		return CONNECT, nil
	case "OPTIONS":
		return OPTIONS, nil
	case "TRACE":
		return TRACE, nil
	case "PATCH":
		return PATCH, nil
	}
	if token == "" {
		return 0, newParseError(ErrMethodParse, 0, "empty method")
	}
	return 0, newParseError(ErrMethodParse, 0, "unrecognized method "+token)
}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case HEAD:
		return "HEAD"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case DELETE:
		return "DELETE"
	case CONNECT:
		return "CONNECT"
	case OPTIONS:
		return "OPTIONS"
	case TRACE:
		return "TRACE"
	case PATCH:
		return "PATCH"
	default:
		return ""
	}
}

func (m Method) Valid() bool {
	return m >= GET && m <= PATCH
}
