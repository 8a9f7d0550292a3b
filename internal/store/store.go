package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a slot has never been written.
	ErrNotFound = errors.New("slot not found")
)

// KV is a named-slot key-value store. Each slot holds one opaque value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
