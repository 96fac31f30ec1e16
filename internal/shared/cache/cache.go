// Package cache is the optional accelerator shared by the attribute store and
// the directory. Every implementation may be swapped for Noop without changing
// results, only latency.
package cache

import (
	"context"
	"time"
)

// DefaultTTL matches the lifetime the employee options cache always used.
const DefaultTTL = time.Hour

//go:generate mockgen -source=cache.go -destination=mock/cache_mock.go -package=mock
type Cache interface {
	// Get decodes the value stored under key into dst. A miss is (false, nil).
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Recorder receives hit/miss notifications from Instrument.
type Recorder interface {
	RecordCacheHit(keyspace string)
	RecordCacheMiss(keyspace string)
	RecordCacheError(keyspace string)
}

type noop struct{}

// Noop never stores anything.
func Noop() Cache { return noop{} }

func (noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noop) Set(context.Context, string, any) error          { return nil }
func (noop) Delete(context.Context, ...string) error         { return nil }

type instrumented struct {
	next     Cache
	keyspace string
	rec      Recorder
}

// Instrument wraps c so every lookup is reported to rec under keyspace.
func Instrument(c Cache, keyspace string, rec Recorder) Cache {
	if c == nil {
		c = Noop()
	}
	if rec == nil {
		return c
	}
	return &instrumented{next: c, keyspace: keyspace, rec: rec}
}

func (c *instrumented) Get(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := c.next.Get(ctx, key, dst)
	switch {
	case err != nil:
		c.rec.RecordCacheError(c.keyspace)
	case ok:
		c.rec.RecordCacheHit(c.keyspace)
	default:
		c.rec.RecordCacheMiss(c.keyspace)
	}
	return ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, value any) error {
	err := c.next.Set(ctx, key, value)
	if err != nil {
		c.rec.RecordCacheError(c.keyspace)
	}
	return err
}

func (c *instrumented) Delete(ctx context.Context, keys ...string) error {
	err := c.next.Delete(ctx, keys...)
	if err != nil {
		c.rec.RecordCacheError(c.keyspace)
	}
	return err
}
