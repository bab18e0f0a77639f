// Package cache holds the response cache used by the HTTP layer. The
// billing core never reads it.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with prefix invalidation
type Cache interface {
	// Get returns the value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// InvalidatePrefix drops every key that starts with prefix
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// ReportsPrefix namespaces cached report responses
const ReportsPrefix = "reports:"
