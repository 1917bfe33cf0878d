package orchestrator

import (
	"context"
	"fmt"

	"ncstfeed/cache"
	"ncstfeed/config"
	"ncstfeed/rssfeeds"
	"ncstfeed/types"

	"github.com/sirupsen/logrus"
)

// Pipeline wires fetcher, cache and normalizer from one Config
type Pipeline struct {
	Config     *config.Config
	Cache      *cache.Cache
	Normalizer *rssfeeds.Normalizer
	store      cache.Store
}

// New builds the pipeline. A Redis slot is used when configured and reachable,
// otherwise the in-process slot.
func New(cfg *config.Config) *Pipeline {
	normalizer := rssfeeds.NewNormalizer(cfg.ResultLimit)
	fetcher := rssfeeds.NewFetcher(rssfeeds.FetcherConfig{Timeout: cfg.RequestTimeout})

	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled() {
		rs, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, using in-process cache")
		} else {
			logrus.WithField("addr", cfg.Redis.Addr).Info("using redis cache slot")
			store = rs
		}
	}

	return &Pipeline{
		Config:     cfg,
		Cache:      cache.New(store, fetcher, normalizer, cfg.CacheTTL),
		Normalizer: normalizer,
		store:      store,
	}
}

// RunOnce executes a single fetch-and-normalize cycle over the configured sources.
// An empty upstream yields no announcements and no error.
func (p *Pipeline) RunOnce(ctx context.Context) (*types.RawPayload, []types.Announcement, error) {
	payload, err := p.Cache.GetOrFetch(ctx, p.Config.Sources)
	if rssfeeds.IsEmpty(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}

	items, err := p.Normalizer.Normalize(*payload)
	if err != nil {
		return payload, nil, fmt.Errorf("failed to normalize %s: %w", payload.Source.Label(), err)
	}
	return payload, items, nil
}

// Close releases the cache store
func (p *Pipeline) Close() error {
	return p.store.Close()
}
