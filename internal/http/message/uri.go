package message

import (
	"sort"
	"strings"
)

// URI is a request target: the path plus its query parameters.
type URI struct {
	Path  string
	Query map[string]string
}

// ParseURI splits s at the first '?' into a path and a query string. Every
// '&'-separated pair of the query string must hold exactly one '='.
func ParseURI(s string) (URI, error) {
	uri := URI{Query: make(map[string]string)}

	paramIdx := strings.IndexByte(s, '?')
	if paramIdx == -1 {
		uri.Path = s
		return uri, nil
	}
	uri.Path = s[:paramIdx]

	offset := paramIdx + 1
	for _, pair := range strings.Split(s[paramIdx+1:], "&") {
		eq := strings.IndexByte(pair, '=')
		if eq == -1 {
			return URI{}, newParseError(ErrURIParse, offset, "query pair without '='")
		}
		if strings.IndexByte(pair[eq+1:], '=') != -1 {
			return URI{}, newParseError(ErrURIParse, offset+eq+1, "query pair with more than one '='")
		}
		uri.Query[pair[:eq]] = pair[eq+1:]
		offset += len(pair) + 1
	}

	return uri, nil
}

// String renders the target. Query pairs are emitted in key order.
func (u URI) String() string {
	if len(u.Query) == 0 {
		return u.Path
	}

	keys := make([]string, 0, len(u.Query))
	for k := range u.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(u.Path)
	for i, k := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(u.Query[k])
	}
	return b.String()
}

// Param returns the value of a query parameter.
func (u URI) Param(key string) (string, bool) {
	v, ok := u.Query[key]
	return v, ok
}

// Equal reports whether both targets have the same path and the same set of
// query pairs.
func (u URI) Equal(other URI) bool {
	if u.Path != other.Path || len(u.Query) != len(other.Query) {
		return false
	}
	for k, v := range u.Query {
		ov, ok := other.Query[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
