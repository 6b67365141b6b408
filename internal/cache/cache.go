// Package cache provides the bounded, TTL-checked response cache for search.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/casesearch/internal/clock"
	"github.com/usestring/casesearch/pkg/types"
)

type entry struct {
	resp     *types.SearchResponse
	storedAt time.Time
}

// ResponseCache provides thread-safe LRU caching for full search responses.
// Entries older than the TTL are treated as misses and evicted on read.
type ResponseCache struct {
	cache *lru.Cache[string, entry]
	ttl   time.Duration
	clock clock.Clock
}

// New creates a cache holding at most maxItems responses for ttl each.
func New(maxItems int, ttl time.Duration, clk clock.Clock) (*ResponseCache, error) {
	c, err := lru.New[string, entry](maxItems)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &ResponseCache{cache: c, ttl: ttl, clock: clk}, nil
}

// Get returns a copy of the cached response for key if it is still fresh.
func (c *ResponseCache) Get(ctx context.Context, key string) (*types.SearchResponse, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	e, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if c.clock.Now().Sub(e.storedAt) >= c.ttl {
		c.cache.Remove(key)
		return nil, false, nil
	}
	return e.resp.Clone(), true, nil
}

// Put stores a copy of resp under key, replacing any existing entry.
func (c *ResponseCache) Put(ctx context.Context, key string, resp *types.SearchResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.cache.Add(key, entry{resp: resp.Clone(), storedAt: c.clock.Now()})
	return nil
}

// Len returns the current number of items in the cache, fresh or not.
func (c *ResponseCache) Len() int {
	return c.cache.Len()
}

// Key returns the canonical cache key for a validated, normalized request.
// Normalization sorts filter sets, so re-ordered filters share a key.
func Key(req *types.SearchRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	return "search:" + string(b), nil
}
