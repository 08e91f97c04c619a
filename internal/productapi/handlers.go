// Package productapi binds product CRUD handlers onto a rawhttp router.
//
// Malformed ids and bodies are answered with 500, as are store failures;
// only a missing row yields 404.
package productapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pankajredekar/gormcrud/internal/models"
	"github.com/pankajredekar/gormcrud/internal/rawhttp"
	"github.com/pankajredekar/gormcrud/internal/store"
	"github.com/rs/zerolog"
)

const (
	msgCreated  = "Product created"
	msgUpdated  = "Product updated"
	msgDeleted  = "Product deleted"
	msgNotFound = "Product not found"
	msgError    = "Error"
)

var ErrInvalidID = errors.New("invalid product id")

// Store is the persistence the handlers need
type Store interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Get(ctx context.Context, id int32) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int32, p models.Product) (int64, error)
	Delete(ctx context.Context, id int32) (int64, error)
}

type Handlers struct {
	store Store
	log   zerolog.Logger
}

func NewHandlers(s Store, log zerolog.Logger) *Handlers {
	return &Handlers{store: s, log: log}
}

// Router returns a router with the product routes in priority order. The
// item route for GET must precede the collection route.
func (h *Handlers) Router() *rawhttp.Router {
	r := rawhttp.NewRouter()
	r.Handle("POST", "/products", h.create)
	r.Handle("GET", "/products/", h.get)
	r.Handle("GET", "/products", h.list)
	r.Handle("PUT", "/products/", h.update)
	r.Handle("DELETE", "/products/", h.delete)
	return r
}

func (h *Handlers) create(ctx context.Context, req *rawhttp.Request) rawhttp.Response {
	p, err := models.DecodeProductPayload([]byte(req.Body()))
	if err != nil {
		return h.fail(req, "decode product", err)
	}

	created, err := h.store.Create(ctx, p)
	if err != nil {
		return h.fail(req, "create product", err)
	}
	h.log.Debug().Int32("id", created.ID).Msg("product created")
	return rawhttp.OK(msgCreated)
}

func (h *Handlers) get(ctx context.Context, req *rawhttp.Request) rawhttp.Response {
	id, err := parseID(req.ID())
	if err != nil {
		return h.fail(req, "parse id", err)
	}

	p, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return rawhttp.NotFound(msgNotFound)
	}
	if err != nil {
		return h.fail(req, "get product", err)
	}
	return h.json(req, p)
}

func (h *Handlers) list(ctx context.Context, req *rawhttp.Request) rawhttp.Response {
	products, err := h.store.List(ctx)
	if err != nil {
		return h.fail(req, "list products", err)
	}
	return h.json(req, products)
}

func (h *Handlers) update(ctx context.Context, req *rawhttp.Request) rawhttp.Response {
	id, err := parseID(req.ID())
	if err != nil {
		return h.fail(req, "parse id", err)
	}
	p, err := models.DecodeProductPayload([]byte(req.Body()))
	if err != nil {
		return h.fail(req, "decode product", err)
	}

	n, err := h.store.Update(ctx, id, p)
	if err != nil {
		return h.fail(req, "update product", err)
	}
	if n == 0 {
		return rawhttp.NotFound(msgNotFound)
	}
	return rawhttp.OK(msgUpdated)
}

func (h *Handlers) delete(ctx context.Context, req *rawhttp.Request) rawhttp.Response {
	id, err := parseID(req.ID())
	if err != nil {
		return h.fail(req, "parse id", err)
	}

	n, err := h.store.Delete(ctx, id)
	if err != nil {
		return h.fail(req, "delete product", err)
	}
	if n == 0 {
		return rawhttp.NotFound(msgNotFound)
	}
	return rawhttp.OK(msgDeleted)
}

func (h *Handlers) json(req *rawhttp.Request, v interface{}) rawhttp.Response {
	data, err := json.Marshal(v)
	if err != nil {
		return h.fail(req, "encode response", err)
	}
	return rawhttp.OK(string(data))
}

// fail logs err and returns the generic 500; details never reach the client
func (h *Handlers) fail(req *rawhttp.Request, op string, err error) rawhttp.Response {
	method, target := req.RequestLine()
	h.log.Error().Err(err).
		Str("op", op).
		Str("method", method).
		Str("path", target).
		Msg("request failed")
	return rawhttp.InternalServerError(msgError)
}

func parseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return int32(id), nil
}
