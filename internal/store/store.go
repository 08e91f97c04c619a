// Package store persists addresses and products through GORM. Every
// operation is a single statement; no transactions are used.
package store

import "errors"

// ErrNotFound is returned when no row matches the requested id
var ErrNotFound = errors.New("not found")
