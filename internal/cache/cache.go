package cache

import (
	"context"
	"time"
)

// Cache stores JSON values under namespaced keys. A zero ttl keeps the
// value until it is deleted.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	// SetJSONNX writes only when key is absent and reports whether it did.
	SetJSONNX(ctx context.Context, key string, val any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}
