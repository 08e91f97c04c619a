// Package rawhttp serves a minimal HTTP/1.1 dialect directly over TCP.
//
// A request is whatever arrives in a single read of at most BufferSize
// bytes. Content-Length and chunked encoding are not honored, so a body that
// spans several TCP segments is truncated. ReadRequest is the only place that
// touches the socket on the way in; replacing it is enough to lift the
// limitation.
package rawhttp

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const DefaultBufferSize = 1024

// ErrEmptyRequest is returned when the peer closed without sending anything
var ErrEmptyRequest = errors.New("empty request")

// Request is the text of a raw request. Nothing is parsed eagerly; routing
// works on the raw text and handlers pull the id and body out of it.
type Request struct {
	Raw        string
	RemoteAddr string
}

// ReadRequest performs exactly one Read of up to bufSize bytes from r.
// Each maximal ill-formed UTF-8 subsequence is replaced with one U+FFFD.
func ReadRequest(r io.Reader, bufSize int) (*Request, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	buf := make([]byte, bufSize)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, ErrEmptyRequest
		}
		return nil, fmt.Errorf("read request: %w", err)
	}

	// Data that arrived together with an error is still served
	return &Request{Raw: lossyString(buf[:n])}, nil
}

func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[:size])
			b = b[size:]
			continue
		}
		sb.WriteRune(utf8.RuneError)
		b = b[invalidPrefixLen(b):]
	}
	return sb.String()
}

// invalidPrefixLen returns the length of the maximal subpart of the
// ill-formed sequence at the start of b: the lead byte plus every following
// byte that could still continue it.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c >= 0xE1 && c <= 0xEC, c == 0xEE, c == 0xEF:
		need = 2
	case c == 0xED:
		need, hi = 2, 0x9F
	case c == 0xF0:
		need, lo = 3, 0x90
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	case c == 0xF4:
		need, hi = 3, 0x8F
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// NewRequest wraps raw request text, mostly for tests
func NewRequest(raw string) *Request {
	return &Request{Raw: raw}
}

// RequestLine returns the method and target of the first line, for logging
func (r *Request) RequestLine() (method, target string) {
	line := r.Raw
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) > 0 {
		method = fields[0]
	}
	if len(fields) > 1 {
		target = fields[1]
	}
	return method, target
}

// ID returns the resource id of a single-item route: the third "/"-separated
// segment of the raw text, cut at the first whitespace. "GET /products/7
// HTTP/1.1" yields "7". A missing segment yields "".
func (r *Request) ID() string {
	segments := strings.SplitN(r.Raw, "/", 4)
	if len(segments) < 3 {
		return ""
	}
	fields := strings.Fields(segments[2])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Body returns everything after the last blank line (CRLF CRLF). Without a
// blank line the whole request text is returned.
func (r *Request) Body() string {
	parts := strings.Split(r.Raw, "\r\n\r\n")
	return parts[len(parts)-1]
}
