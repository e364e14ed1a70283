// Package cache provides the query-result cache injected into the data
// service layer. The calculation core never sees it; cached values are
// serialized snapshots keyed by query shape.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the cached bytes for key and whether the entry exists
	// and has not expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores val under key for ttl. A non-positive ttl stores the
	// entry without expiry.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	// Delete drops key if present.
	Delete(ctx context.Context, key string)
}

// Nop is the disabled-cache backend.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
func (Nop) Delete(context.Context, string)                     {}
