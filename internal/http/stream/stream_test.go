package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunkReader struct {
	chunks [][]byte
	err    error
	reads  int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	c.reads++
	if len(c.chunks) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		chunkSize   int
		maxSize     int
		expectChunk int
		expectMax   int
	}{
		{"explicit sizes", 128, 1024, 128, 1024},
		{"default chunk size", 0, 4096, DefaultChunkSize, 4096},
		{"max raised to chunk size", 256, 10, 256, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(strings.NewReader(""), tt.chunkSize, tt.maxSize).(*reader)
			assert.Equal(t, tt.expectChunk, r.chunkSize)
			assert.Equal(t, tt.expectMax, r.maxSize)
		})
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect bool
	}{
		{"empty", "", false},
		{"request line only", "GET / HTTP/1.1\r\n", false},
		{"partial header", "GET / HTTP/1.1\r\nHost: a", false},
		{"header block closed", "GET / HTTP/1.1\r\nHost: a\r\n", true},
		{"with body", "GET / HTTP/1.1\r\nHost: a\r\nbody", true},
		{"no headers", "GET / HTTP/1.1\r\n\r\n", true},
		{"bare line feeds", "GET / HTTP/1.1\nHost: a\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Complete([]byte(tt.data)))
		})
	}
}

func TestReadMessage(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []string
		chunkSize int
		maxSize   int
		expect    string
		expectErr error
	}{
		{
			name:      "single read",
			chunks:    []string{"GET / HTTP/1.1\r\nHost: a\r\nbody"},
			chunkSize: 512,
			maxSize:   1024,
			expect:    "GET / HTTP/1.1\r\nHost: a\r\nbody",
		},
		{
			name:      "frame split across reads",
			chunks:    []string{"GET / HT", "TP/1.1\r\nHo", "st: a\r", "\nbody"},
			chunkSize: 512,
			maxSize:   1024,
			expect:    "GET / HTTP/1.1\r\nHost: a\r\nbody",
		},
		{
			name:      "message larger than chunk size",
			chunks:    []string{"POST /upload HTTP/1.1\r\nContent-Type: text/plain\r\nhello"},
			chunkSize: 8,
			maxSize:   1024,
			expect:    "POST /upload HTTP/1.1\r\nContent-Type: text/plain\r\nhello",
		},
		{
			name:      "incomplete frame returned at EOF",
			chunks:    []string{"GET / HTTP/1.1"},
			chunkSize: 512,
			maxSize:   1024,
			expect:    "GET / HTTP/1.1",
		},
		{
			name:      "empty source",
			chunks:    nil,
			chunkSize: 512,
			maxSize:   1024,
			expectErr: io.EOF,
		},
		{
			name:      "too large",
			chunks:    []string{strings.Repeat("a", 100)},
			chunkSize: 32,
			maxSize:   64,
			expectErr: ErrMessageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &chunkReader{}
			for _, c := range tt.chunks {
				src.chunks = append(src.chunks, []byte(c))
			}

			msg, err := New(src, tt.chunkSize, tt.maxSize).ReadMessage()
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, string(msg))
		})
	}
}

func TestReadMessageStopsAtFrame(t *testing.T) {
	src := &chunkReader{chunks: [][]byte{
		[]byte("GET / HTTP/1.1\r\nA: 1\r\n"),
		[]byte("never read"),
	}}

	msg, err := New(src, 512, 1024).ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\nA: 1\r\n", string(msg))
	assert.Equal(t, 1, src.reads)
}

func TestReadMessageOneByte(t *testing.T) {
	raw := "GET /index.html?user=test HTTP/1.1\r\nUser-Agent: Rust\r\n"
	msg, err := New(iotest.OneByteReader(strings.NewReader(raw)), 512, 1024).ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, raw, string(msg))
}

func TestReadMessageSourceError(t *testing.T) {
	boom := errors.New("boom")
	src := &chunkReader{chunks: [][]byte{[]byte("GET / ")}, err: boom}

	msg, err := New(src, 512, 1024).ReadMessage()
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, msg)
}

func TestReadMessageDataWithEOF(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\nA: 1")
	msg, err := New(iotest.DataErrReader(bytes.NewReader(raw)), 512, 1024).ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, raw, msg)
}
