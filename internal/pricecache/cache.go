package pricecache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/pkg/logger"
)

// Fetcher provides price series from the upstream quote source.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol market.Symbol, from, to time.Time) (market.PriceSeries, error)
}

// Cache is an in-memory TTL cache of price series, keyed by symbol.
// Concurrent callers for the same symbol share a single upstream fetch
// (single-flight); different symbols never contend on a fetch.
// Entries are replaced whole on refetch, never merged, and staleness is
// evaluated lazily on lookup.
type Cache struct {
	fetcher Fetcher
	logger  *logger.Logger
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[market.Symbol]entry
	group   singleflight.Group
}

// entry records one fetched series together with the window it was
// requested for. Coverage is judged against the requested window, not the
// data extents, since non-trading days leave gaps at the edges.
type entry struct {
	series    market.PriceSeries
	from      time.Time
	to        time.Time
	fetchedAt time.Time
}

// EntryStatus describes one cache entry for diagnostics.
type EntryStatus struct {
	Symbol    market.Symbol `json:"symbol"`
	FetchedAt time.Time     `json:"fetched_at"`
	Fresh     bool          `json:"fresh"`
}

// New creates a cache backed by the given fetcher.
func New(fetcher Fetcher, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		logger:  log,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[market.Symbol]entry),
	}
}

// WithClock overrides the cache's clock. Intended for tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// GetOrFetch returns the cached series for symbol when it is fresh and
// covers the requested window, otherwise fetches from upstream and
// replaces the entry. At most one fetch per symbol is in flight at any
// time; concurrent callers wait for and share that fetch's result.
func (c *Cache) GetOrFetch(ctx context.Context, symbol market.Symbol, from, to time.Time) (market.PriceSeries, error) {
	for {
		if series, ok := c.lookup(symbol, from, to); ok {
			return series, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err, shared := c.group.Do(string(symbol), func() (interface{}, error) {
			// A flight that completed while we were queueing may already
			// have filled the entry.
			if series, ok := c.lookup(symbol, from, to); ok {
				return series, nil
			}

			series, err := c.fetcher.FetchSeries(ctx, symbol, from, to)
			if err != nil {
				return nil, err
			}

			c.store(symbol, series, from, to)
			return series, nil
		})
		if err != nil {
			return nil, err
		}
		if !shared {
			return v.(market.PriceSeries), nil
		}

		// A shared flight is keyed only by symbol, so its window may not
		// cover ours. Go around again: either the fresh entry satisfies
		// the next lookup, or we re-enter the group and the refetch
		// stays serialized with every other caller for this symbol.
	}
}

// lookup returns the cached series when present, fresh and covering the
// requested window.
func (c *Cache) lookup(symbol market.Symbol, from, to time.Time) (market.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[symbol]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	if e.from.After(from) || e.to.Before(to) {
		return nil, false
	}

	return e.series, true
}

// store replaces the entry for symbol.
func (c *Cache) store(symbol market.Symbol, series market.PriceSeries, from, to time.Time) {
	c.mu.Lock()
	c.entries[symbol] = entry{
		series:    series,
		from:      from,
		to:        to,
		fetchedAt: c.now(),
	}
	c.mu.Unlock()

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(series),
	}).Debug("Cached price series")
}

// Entries reports the state of every cache entry, ordered arbitrarily.
func (c *Cache) Entries() []EntryStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make([]EntryStatus, 0, len(c.entries))
	for symbol, e := range c.entries {
		out = append(out, EntryStatus{
			Symbol:    symbol,
			FetchedAt: e.fetchedAt,
			Fresh:     now.Sub(e.fetchedAt) < c.ttl,
		})
	}
	return out
}
