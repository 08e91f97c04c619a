package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidJSON  = errors.New("invalid JSON body")
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// decode accepts exactly one JSON value, optionally surrounded by whitespace.
// Unknown fields are ignored.
func decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}
	return nil
}
