package cache

import (
	"context"
	"time"

	"github.com/matzehuels/dropline/pkg/observability"
)

// NullCache backs --no-cache and the "none" backend. Every lookup misses, so
// layouts and renders are recomputed on each run.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return NullCache{}
}

// Get reports a miss, including to the cache hooks, so a disabled cache still
// shows up in hit ratios.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	return nil, false, nil
}

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
