// Package metadata keeps small key/value facts about the CLI session in the
// local SQLite database: the bearer token and who it belongs to.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyUserID   = "user_id"
	KeyEmail    = "email"
	KeyFullName = "full_name"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a key
// that was never set.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
