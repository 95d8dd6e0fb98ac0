// Package store provides the key-value persistence layer for OrganizeIT.
//
// Every other component reads and writes through the Store interface. Keys are
// namespaced strings ("<domain>:<qualifier>[:<id>]") and values are JSON
// documents; the store itself enforces no schema. Only single-key operations
// are offered, so anything needing atomicity across a read-modify-write must
// build it on top (see internal/collection).
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Entry is a single key/value pair returned by List.
type Entry struct {
	Key   string
	Value []byte
}

// Store is a durable mapping from string keys to JSON values. Writes are
// durable before Set returns. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value for key (last write wins).
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all entries whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Entry, error)
	// Close releases the underlying resources.
	Close() error
}

// GetJSON reads key and decodes it with DecodeJSON.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := DecodeJSON[T](data)
	if err != nil {
		return v, fmt.Errorf("decoding %s: %w", key, err)
	}
	return v, nil
}

// DecodeJSON decodes data into a T. Unknown fields are rejected so that a
// document written under a different schema surfaces as an error instead of
// a partially populated value.
func DecodeJSON[T any](data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(&v)
	return v, err
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// prefixEnd returns the smallest string greater than every string with the
// given prefix, or "" when no such bound exists.
func prefixEnd(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return ""
}
