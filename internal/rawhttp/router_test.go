package rawhttp

import (
	"bytes"
	"context"
	"testing"
)

func named(name string) HandlerFunc {
	return func(context.Context, *Request) Response {
		return OK(name)
	}
}

// productRoutes mirrors the priority order used by the product service
func productRoutes() *Router {
	r := NewRouter()
	r.Handle("POST", "/products", named("create"))
	r.Handle("GET", "/products/", named("get"))
	r.Handle("GET", "/products", named("list"))
	r.Handle("PUT", "/products/", named("update"))
	r.Handle("DELETE", "/products/", named("delete"))
	return r
}

func TestRouterDispatch(t *testing.T) {
	r := productRoutes()
	ctx := context.Background()

	cases := []struct {
		raw    string
		status Status
		body   string
	}{
		{"POST /products HTTP/1.1\r\n\r\n{}", StatusOK, "create"},
		{"GET /products/1 HTTP/1.1\r\n\r\n", StatusOK, "get"},
		{"GET /products/ HTTP/1.1\r\n\r\n", StatusOK, "get"},
		{"GET /products HTTP/1.1\r\n\r\n", StatusOK, "list"},
		{"PUT /products/1 HTTP/1.1\r\n\r\n{}", StatusOK, "update"},
		{"DELETE /products/1 HTTP/1.1\r\n\r\n", StatusOK, "delete"},
		{"PUT /products HTTP/1.1\r\n\r\n{}", StatusNotFound, "404 Not Found"},
		{"DELETE /products HTTP/1.1\r\n\r\n", StatusNotFound, "404 Not Found"},
		{"PATCH /products/1 HTTP/1.1\r\n\r\n", StatusNotFound, "404 Not Found"},
		{"GET /orders HTTP/1.1\r\n\r\n", StatusNotFound, "404 Not Found"},
		{"get /products HTTP/1.1\r\n\r\n", StatusNotFound, "404 Not Found"},
		{"", StatusNotFound, "404 Not Found"},
	}

	for _, tc := range cases {
		resp := r.Dispatch(ctx, NewRequest(tc.raw))
		if resp.Status != tc.status || resp.Body != tc.body {
			t.Errorf("Dispatch(%q) = %s %q, want %s %q", tc.raw, resp.Status, resp.Body, tc.status, tc.body)
		}
	}
}

func TestRouterFirstMatchWins(t *testing.T) {
	r := NewRouter()
	r.Handle("GET", "/products", named("list"))
	r.Handle("GET", "/products/", named("get"))

	// Registered in the wrong order, the shorter prefix shadows the longer one
	resp := r.Dispatch(context.Background(), NewRequest("GET /products/1 HTTP/1.1\r\n\r\n"))
	if resp.Body != "list" {
		t.Errorf("Expected the first registered route to win, got %q", resp.Body)
	}
}

func TestRouterPatterns(t *testing.T) {
	want := []string{"POST /products", "GET /products/", "GET /products", "PUT /products/", "DELETE /products/"}
	got := productRoutes().Patterns()

	if len(got) != len(want) {
		t.Fatalf("Expected %d patterns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pattern %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestResponseString(t *testing.T) {
	cases := []struct {
		resp Response
		want string
	}{
		{OK(`{"id":1}`), "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"id\":1}"},
		{NotFound("Product not found"), "HTTP/1.1 404 Not Found\r\n\r\nProduct not found"},
		{InternalServerError("Error"), "HTTP/1.1 500 Internal Server Error\r\n\r\nError"},
	}

	for _, tc := range cases {
		if got := tc.resp.String(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestResponseWriteTo(t *testing.T) {
	var buf bytes.Buffer
	resp := OK("Product created")

	n, err := resp.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Reported %d bytes, wrote %d", n, buf.Len())
	}
	if buf.String() != resp.String() {
		t.Errorf("Expected %q, got %q", resp.String(), buf.String())
	}
}
