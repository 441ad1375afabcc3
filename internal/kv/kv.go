// Package kv is a string-keyed document store with JSON-serialized values.
// The address book and review store sit on top of it; every mutation they
// make rewrites the whole value under its key, so the last writer wins.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get unmarshals the value stored under key into into.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string, into any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
