// Package apperr defines the error kinds surfaced to API callers.
//
// Components wrap one of these sentinels with fmt.Errorf("...: %w", ...) at
// their boundary; the HTTP layer maps them to status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means the credential header was absent.
	ErrAuthRequired = errors.New("authorization required")

	// ErrInvalidInput means a write was rejected before touching the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a referenced id is absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrStore means the underlying persistence layer failed.
	ErrStore = errors.New("store failure")
)

// Invalid wraps err (typically a validation error) as ErrInvalidInput.
func Invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Store wraps a persistence error as ErrStore.
func Store(err error) error {
	if err == nil || errors.Is(err, ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
