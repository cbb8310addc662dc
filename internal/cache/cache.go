// Package cache memoizes price tables by (months, registry) for the
// lifetime of the process, or until Invalidate is called.
package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"PriceBoard/internal/model"
)

// Source produces a wide price table. *collector.Collector satisfies it.
type Source interface {
	FetchPrices(ctx context.Context, months int, reg model.Registry) (*model.WideTable, error)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// PriceCache wraps a Source. Successful tables are stored per key;
// errors are never stored. Concurrent misses on one key share a single
// upstream fetch.
type PriceCache struct {
	src   Source
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*model.WideTable
	gen     uint64
	hits    int
	misses  int
}

// NewPriceCache creates an empty cache in front of src.
func NewPriceCache(src Source) *PriceCache {
	return &PriceCache{src: src, entries: make(map[string]*model.WideTable)}
}

func cacheKey(months int, reg model.Registry) string {
	return strconv.Itoa(months) + "|" + reg.Key()
}

// FetchPrices returns the cached table for (months, reg), fetching it on
// a miss. The returned table is shared and must not be modified.
func (c *PriceCache) FetchPrices(ctx context.Context, months int, reg model.Registry) (*model.WideTable, error) {
	key := cacheKey(months, reg)

	c.mu.Lock()
	if tbl, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return tbl, nil
	}
	c.misses++
	gen := c.gen
	c.mu.Unlock()

	// The shared fetch outlives any one caller: a cancelled request only
	// stops waiting, it does not fail the other callers on this key.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		tbl, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return tbl, nil
		}
		tbl, err := c.src.FetchPrices(fetchCtx, months, reg)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// A table fetched across an Invalidate belongs to the old generation.
		if c.gen == gen {
			c.entries[key] = tbl
		}
		c.mu.Unlock()
		return tbl, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.WideTable), nil
	}
}

// Invalidate drops every cached table.
func (c *PriceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*model.WideTable)
	c.gen++
}

// Stats returns the current counters.
func (c *PriceCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
