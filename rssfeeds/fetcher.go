package rssfeeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ncstfeed/types"

	"github.com/sirupsen/logrus"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultMaxBodyBytes = 5 * 1024 * 1024
)

// DefaultHeaders is the browser-like header set sent to every source.
// Source headers are merged over it.
var DefaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "application/rss+xml, application/atom+xml, application/xml;q=0.9, application/json;q=0.9, text/html;q=0.8, */*;q=0.5",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.google.com/",
}

// FetcherConfig configures the HTTP fetcher
type FetcherConfig struct {
	Timeout  time.Duration
	MaxBytes int64
	// Client overrides the HTTP client, mainly for tests
	Client *http.Client
}

// Fetcher performs one GET per source, without retries
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	now      func() time.Time
}

// NewFetcher creates a Fetcher with the given limits
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBodyBytes
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{client: client, maxBytes: cfg.MaxBytes, now: time.Now}
}

// Fetch retrieves a single source. Failures are always *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, source types.Source) (*types.RawPayload, error) {
	label := source.Label()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Source: label, Message: "invalid request", Err: err}
	}
	for k, v := range mergeHeaders(DefaultHeaders, source.Headers) {
		req.Header.Set(k, v)
	}

	start := f.now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Source: label, Err: err}
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"source":   label,
		"kind":     source.Kind,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("upstream responded")

	if resp.StatusCode >= http.StatusBadRequest {
		fe := &FetchError{
			Kind:    KindUpstreamHTTP,
			Source:  label,
			Status:  resp.StatusCode,
			Message: http.StatusText(resp.StatusCode),
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			fe.RetryAfter = strings.TrimSpace(resp.Header.Get("Retry-After"))
		}
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fe
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Source: label, Message: fmt.Sprintf("read body: %v", err), Err: err}
	}

	return &types.RawPayload{
		Source:      source,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FetchedAt:   f.now(),
	}, nil
}

// mergeHeaders returns base overlaid with override; neither input is modified
func mergeHeaders(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[http.CanonicalHeaderKey(k)] = v
	}
	for k, v := range override {
		out[http.CanonicalHeaderKey(k)] = v
	}
	return out
}
