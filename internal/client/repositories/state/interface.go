// Package state persists small named blobs of client state (the saved
// session) in the local SQLite database.
package state

import (
	"context"
)

// Repository is a key/value store for serialized client state.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
