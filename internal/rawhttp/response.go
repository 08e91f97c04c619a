package rawhttp

import (
	"io"
	"strings"
)

// Status is the text following "HTTP/1.1 " on the status line
type Status string

const (
	StatusOK                  Status = "200 OK"
	StatusNotFound            Status = "404 Not Found"
	StatusInternalServerError Status = "500 Internal Server Error"
)

// Response is a status and a body. Only 200 responses carry a Content-Type
// header; the end of the body is signalled by closing the connection.
type Response struct {
	Status Status
	Body   string
}

func OK(body string) Response {
	return Response{Status: StatusOK, Body: body}
}

func NotFound(body string) Response {
	return Response{Status: StatusNotFound, Body: body}
}

func InternalServerError(body string) Response {
	return Response{Status: StatusInternalServerError, Body: body}
}

// String renders the complete response
func (r Response) String() string {
	var sb strings.Builder
	sb.WriteString("HTTP/1.1 ")
	sb.WriteString(string(r.Status))
	sb.WriteString("\r\n")
	if r.Status == StatusOK {
		sb.WriteString("Content-Type: application/json\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(r.Body)
	return sb.String()
}

// WriteTo writes the complete response to w in one call
func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
