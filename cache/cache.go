package cache

import (
	"context"
	"sync/atomic"
	"time"

	"ncstfeed/rssfeeds"
	"ncstfeed/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched payload stays fresh
const DefaultTTL = 600 * time.Second

const flightKey = "refresh"

// Fetcher retrieves one source
type Fetcher interface {
	Fetch(ctx context.Context, source types.Source) (*types.RawPayload, error)
}

// Prober decides whether a payload is usable
type Prober interface {
	Probe(payload types.RawPayload) error
}

// Cache serves the last usable payload and refreshes it through the source chain on a miss
type Cache struct {
	store   Store
	fetcher Fetcher
	prober  Prober
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
	// gen is bumped by Invalidate; a refresh started under an older gen does not store
	gen atomic.Uint64
}

// New creates a Cache. A nil store defaults to an in-process slot.
func New(store Store, fetcher Fetcher, prober Prober, ttl time.Duration) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:   store,
		fetcher: fetcher,
		prober:  prober,
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the freshness window
func (c *Cache) TTL() time.Duration { return c.ttl }

// GetOrFetch returns the live payload or runs the fallback chain over sources.
// Concurrent misses share one chain. Expired data is never returned.
func (c *Cache) GetOrFetch(ctx context.Context, sources []types.Source) (*types.RawPayload, error) {
	if entry := c.lookup(ctx); entry != nil {
		return &entry.Payload, nil
	}

	// The chain outlives a caller that goes away so the other waiters still get a result
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		gen := c.gen.Load()
		if entry := c.lookup(flightCtx); entry != nil {
			return &entry.Payload, nil
		}
		return c.refresh(flightCtx, sources, gen)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		payload := *res.Val.(*types.RawPayload)
		return &payload, nil
	case <-ctx.Done():
		return nil, &rssfeeds.FetchError{Kind: rssfeeds.KindNetwork, Source: "cache", Message: "request cancelled", Err: ctx.Err()}
	}
}

// Invalidate drops the cached payload. A refresh already in flight still answers
// its waiters but does not write its result back.
func (c *Cache) Invalidate(ctx context.Context) error {
	c.gen.Add(1)
	c.group.Forget(flightKey)
	return c.store.Clear(ctx)
}

// lookup returns the live entry; store errors count as a miss
func (c *Cache) lookup(ctx context.Context) *types.CacheEntry {
	entry, err := c.store.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("cache read failed, treating as miss")
		return nil
	}
	if !entry.Live(c.now()) {
		return nil
	}
	return entry
}

// refresh tries each source in order and stores the first usable payload
func (c *Cache) refresh(ctx context.Context, sources []types.Source, gen uint64) (*types.RawPayload, error) {
	var lastErr, emptyErr error

	for i, src := range sources {
		log := logrus.WithFields(logrus.Fields{
			"source":  src.Label(),
			"kind":    src.Kind,
			"attempt": i + 1,
			"of":      len(sources),
		})

		payload, err := c.fetcher.Fetch(ctx, src)
		if err == nil {
			err = c.prober.Probe(*payload)
		}
		if err != nil {
			log.WithError(err).Warn("source unusable, trying next")
			if rssfeeds.IsEmpty(err) {
				emptyErr = err
			} else {
				lastErr = err
			}
			continue
		}

		if c.gen.Load() != gen {
			log.Info("cache invalidated during refresh, result not stored")
			return payload, nil
		}

		entry := types.CacheEntry{Payload: *payload, ExpiresAt: c.now().Add(c.ttl)}
		if err := c.store.Set(ctx, entry, c.ttl); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
		log.WithField("bytes", len(payload.Body)).Info("refreshed announcements")
		return payload, nil
	}

	// A source that parsed but was empty is a valid outcome, not a failure
	if emptyErr != nil {
		return nil, emptyErr
	}
	if lastErr == nil {
		lastErr = &rssfeeds.FetchError{Kind: rssfeeds.KindNetwork, Source: "registry", Message: "no upstream sources configured"}
	}
	return nil, lastErr
}
