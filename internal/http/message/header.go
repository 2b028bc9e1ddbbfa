package message

import "strings"

const headerSeparator = ": "

type field struct {
	key   string
	value string
}

// Header is an insertion-ordered collection of key/value pairs with one value
// per key. Keys are compared literally. Header values are immutable: Set and
// Del return a modified copy.
type Header struct {
	fields []field
}

// NewHeader builds a header from alternating key/value arguments.
func NewHeader(kv ...string) Header {
	if len(kv)%2 == 1 {
		panic("message.NewHeader: odd argument count")
	}
	var h Header
	for i := 0; i < len(kv); i += 2 {
		h = h.Set(kv[i], kv[i+1])
	}
	return h
}

// ParseHeader parses a header block. Lines are separated by a bare '\n' and
// each line holds exactly one ": " separator. A repeated key keeps its first
// position and takes the last value.
func ParseHeader(block string) (Header, error) {
	var h Header
	if block == "" {
		return h, nil
	}

	offset := 0
	for _, line := range strings.Split(block, "\n") {
		sep := strings.Index(line, headerSeparator)
		if sep == -1 {
			return Header{}, newParseError(ErrHeaderParse, offset, "header line without \": \"")
		}
		if strings.Contains(line[sep+len(headerSeparator):], headerSeparator) {
			return Header{}, newParseError(ErrHeaderParse, offset+sep+len(headerSeparator), "header line with more than one \": \"")
		}
		h = h.set(line[:sep], line[sep+len(headerSeparator):])
		offset += len(line) + 1
	}
	return h, nil
}

func (h Header) index(key string) int {
	for i, f := range h.fields {
		if f.key == key {
			return i
		}
	}
	return -1
}

// set mutates h in place; only used while h is still private to a parser.
func (h Header) set(key, value string) Header {
	if i := h.index(key); i != -1 {
		h.fields[i].value = value
		return h
	}
	h.fields = append(h.fields, field{key: key, value: value})
	return h
}

// Set returns a copy of h with key set to value.
func (h Header) Set(key, value string) Header {
	cp := Header{fields: make([]field, len(h.fields), len(h.fields)+1)}
	copy(cp.fields, h.fields)
	return cp.set(key, value)
}

// Del returns a copy of h without key.
func (h Header) Del(key string) Header {
	i := h.index(key)
	if i == -1 {
		return h
	}
	cp := Header{fields: make([]field, 0, len(h.fields)-1)}
	cp.fields = append(cp.fields, h.fields[:i]...)
	cp.fields = append(cp.fields, h.fields[i+1:]...)
	return cp
}

func (h Header) Value(key string) (string, bool) {
	if i := h.index(key); i != -1 {
		return h.fields[i].value, true
	}
	return "", false
}

// Get returns the value for key or the empty string.
func (h Header) Get(key string) string {
	v, _ := h.Value(key)
	return v
}

func (h Header) Len() int {
	return len(h.fields)
}

func (h Header) Keys() []string {
	keys := make([]string, len(h.fields))
	for i, f := range h.fields {
		keys[i] = f.key
	}
	return keys
}

func (h Header) Map() map[string]string {
	m := make(map[string]string, len(h.fields))
	for _, f := range h.fields {
		m[f.key] = f.value
	}
	return m
}

// Equal compares the two headers as sets of pairs, ignoring order.
func (h Header) Equal(other Header) bool {
	if len(h.fields) != len(other.fields) {
		return false
	}
	for _, f := range h.fields {
		v, ok := other.Value(f.key)
		if !ok || v != f.value {
			return false
		}
	}
	return true
}

// String renders the header block: entries joined by a bare '\n'.
func (h Header) String() string {
	var b strings.Builder
	h.writeTo(&b)
	return b.String()
}

func (h Header) writeTo(b *strings.Builder) {
	for i, f := range h.fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.key)
		b.WriteString(headerSeparator)
		b.WriteString(f.value)
	}
}
