package rawhttp

import (
	"context"
	"strings"
)

// HandlerFunc turns a request into a response. It must not write to the
// connection itself.
type HandlerFunc func(ctx context.Context, req *Request) Response

// Handler is what the Server dispatches accepted requests to
type Handler interface {
	Dispatch(ctx context.Context, req *Request) Response
}

type route struct {
	pattern string
	handler HandlerFunc
}

// Router matches the raw request text against "METHOD /prefix" patterns in
// registration order. The first pattern the text starts with wins, so more
// specific prefixes have to be registered before shorter ones sharing the
// same method.
type Router struct {
	routes   []route
	notFound HandlerFunc
}

func NewRouter() *Router {
	return &Router{notFound: notFound}
}

// Handle appends a route
func (r *Router) Handle(method, prefix string, h HandlerFunc) {
	r.routes = append(r.routes, route{
		pattern: method + " " + prefix,
		handler: h,
	})
}

// Patterns returns the registered patterns in priority order
func (r *Router) Patterns() []string {
	patterns := make([]string, len(r.routes))
	for i, rt := range r.routes {
		patterns[i] = rt.pattern
	}
	return patterns
}

func (r *Router) Dispatch(ctx context.Context, req *Request) Response {
	for _, rt := range r.routes {
		if strings.HasPrefix(req.Raw, rt.pattern) {
			return rt.handler(ctx, req)
		}
	}
	return r.notFound(ctx, req)
}

func notFound(context.Context, *Request) Response {
	return NotFound("404 Not Found")
}
