package services

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// QueryKey names a cached GET result.
type QueryKey string

const (
	KeyDonations   QueryKey = "donations"
	KeyRequests    QueryKey = "requests"
	KeyImpactStats QueryKey = "impact-stats"
	KeyHeatmap     QueryKey = "heatmap"
)

// Cache holds the last successful result per query key. Concurrent fetches
// of the same key share one request. Cached values are shared between
// callers and must not be modified.
//
// gen counts invalidations per key and epoch counts Clear calls. A fetch
// stores its result only if neither moved while it was loading, and
// fetches started under different versions never share a flight.
type Cache struct {
	mu      sync.Mutex
	entries map[QueryKey]any
	gen     map[QueryKey]uint64
	epoch   uint64
	group   singleflight.Group
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[QueryKey]any),
		gen:     make(map[QueryKey]uint64),
	}
}

// fetch returns the cached value for key or loads it with load. A result
// that arrives after key was invalidated is returned but not stored.
func fetch[T any](ctx context.Context, c *Cache, key QueryKey, load func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v.(T), nil
	}
	gen, epoch := c.gen[key], c.epoch
	c.mu.Unlock()

	v, err, _ := c.group.Do(flightKey(key, gen, epoch), func() (any, error) {
		res, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen[key] == gen && c.epoch == epoch {
			c.entries[key] = res
		}
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops the given keys so the next read goes to the server.
func (c *Cache) Invalidate(keys ...QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.gen[k]++
	}
}

// Clear empties the cache. Fetches still in flight are not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	clear(c.entries)
}

func flightKey(key QueryKey, gen, epoch uint64) string {
	return string(key) + "@" + strconv.FormatUint(epoch, 10) + "." + strconv.FormatUint(gen, 10)
}

// Cached reports whether key currently has a stored value.
func (c *Cache) Cached(key QueryKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
