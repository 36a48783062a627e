// Package metadata is a small key/value store over the local SQLite
// database. It backs the persisted session tokens.
package metadata

import (
	"context"
)

// Repository stores opaque string values under fixed keys.
// Get returns common.ErrNotFound for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}
