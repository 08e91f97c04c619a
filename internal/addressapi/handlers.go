// Package addressapi serves address CRUD over net/http.
package addressapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/pankajredekar/gormcrud/internal/models"
	"github.com/pankajredekar/gormcrud/internal/store"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds create and update bodies
const maxBodyBytes = 1 << 20

// Store is the persistence the handlers need
type Store interface {
	Create(ctx context.Context, p models.AddressPayload) (models.Address, error)
	Get(ctx context.Context, id uuid.UUID) (models.Address, error)
	Page(ctx context.Context, page, perPage int) ([]models.Address, int64, error)
	Update(ctx context.Context, id uuid.UUID, p models.AddressPayload) (models.Address, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type App struct {
	store Store
	log   zerolog.Logger
}

func NewApp(s Store, log zerolog.Logger) *App {
	return &App{store: s, log: log}
}

// value is the {"value": "..."} envelope used for messages
type value struct {
	Value string `json:"value"`
}

type pageResponse struct {
	Address []models.Address `json:"address"`
	NumPage int64            `json:"num_page"`
}

func (a *App) getAddress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeText(a.log, w, r, http.StatusNotFound, "not found")
		return
	}

	addr, err := a.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeText(a.log, w, r, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	writeJSON(a.log, w, r, http.StatusOK, addr)
}

func (a *App) listAddresses(w http.ResponseWriter, r *http.Request) {
	page, err1 := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, err2 := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err1 != nil || err2 != nil || page < 1 || perPage < 1 {
		writeJSON(a.log, w, r, http.StatusBadRequest, value{Value: "invalid pagination parameters"})
		return
	}

	addresses, numPages, err := a.store.Page(r.Context(), page, perPage)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	writeJSON(a.log, w, r, http.StatusOK, pageResponse{Address: addresses, NumPage: numPages})
}

func (a *App) createAddress(w http.ResponseWriter, r *http.Request) {
	payload, err := a.decodePayload(w, r)
	if err != nil {
		return
	}

	addr, err := a.store.Create(r.Context(), payload)
	if err != nil {
		a.log.Error().Err(err).Msg("address insertion failed")
		writeJSON(a.log, w, r, http.StatusInternalServerError, value{Value: "error during database insertion"})
		return
	}
	writeJSON(a.log, w, r, http.StatusOK, addr)
}

func (a *App) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeText(a.log, w, r, http.StatusNotFound, "not found")
		return
	}
	payload, err := a.decodePayload(w, r)
	if err != nil {
		return
	}

	addr, err := a.store.Update(r.Context(), id, payload)
	if errors.Is(err, store.ErrNotFound) {
		writeText(a.log, w, r, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	writeJSON(a.log, w, r, http.StatusOK, addr)
}

func (a *App) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(a.log, w, r, http.StatusNotFound, value{Value: "address not found"})
		return
	}

	n, err := a.store.Delete(r.Context(), id)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if n == 0 {
		writeJSON(a.log, w, r, http.StatusNotFound, value{Value: "address not found"})
		return
	}
	writeJSON(a.log, w, r, http.StatusOK, value{Value: "address deleted"})
}

// decodePayload reads and decodes the body. On failure it has already
// written a 400 and the caller only needs to return.
func (a *App) decodePayload(w http.ResponseWriter, r *http.Request) (models.AddressPayload, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		var p models.AddressPayload
		if p, err = models.DecodeAddressPayload(data); err == nil {
			return p, nil
		}
	}

	a.log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected request body")
	writeJSON(a.log, w, r, http.StatusBadRequest, value{Value: "invalid request body"})
	return models.AddressPayload{}, err
}

func (a *App) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.log.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeJSON(a.log, w, r, http.StatusInternalServerError, value{Value: "internal server error"})
}

func writeJSON(log zerolog.Logger, w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logWriteError(log, r, err)
	}
}

func writeText(log zerolog.Logger, w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		logWriteError(log, r, err)
	}
}

// logWriteError records a response that could not be written; the status is
// already sent so the client cannot be told
func logWriteError(log zerolog.Logger, r *http.Request, err error) {
	log.Debug().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("failed to write response")
}
