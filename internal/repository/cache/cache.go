package cache

import (
	"context"
	"time"
)

// Cache stores serialized analysis results by fingerprint.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

const keyPrefix = "dealyield:analysis:"
