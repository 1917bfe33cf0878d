package orchestrator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ncstfeed/config"
	"ncstfeed/rssfeeds"
	"ncstfeed/types"

	"github.com/alicebob/miniredis/v2"
)

func testConfig(sources ...types.Source) *config.Config {
	return &config.Config{
		Sources:        sources,
		CacheTTL:       time.Minute,
		RequestTimeout: 2 * time.Second,
		ResultLimit:    2,
	}
}

func TestRunOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<rss version="2.0"><channel><title>t</title>
<item><title>one</title></item><item><title>two</title></item><item><title>three</title></item>
</channel></rss>`)
	}))
	defer srv.Close()

	p := New(testConfig(types.Source{Kind: types.KindRSS, Name: "feed", URL: srv.URL}))
	defer p.Close()

	payload, items, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if payload.Source.Name != "feed" {
		t.Errorf("source = %q", payload.Source.Name)
	}
	if len(items) != 2 || items[0].Title != "one" || items[1].Title != "two" {
		t.Errorf("items = %+v", items)
	}
}

func TestRunOnceEmptyAndFailure(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<rss version="2.0"><channel><title>t</title></channel></rss>`)
	}))
	defer empty.Close()

	p := New(testConfig(types.Source{Kind: types.KindRSS, URL: empty.URL}))
	_, items, err := p.RunOnce(context.Background())
	if err != nil || len(items) != 0 {
		t.Errorf("empty feed: items=%v err=%v", items, err)
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()

	p = New(testConfig(types.Source{Kind: types.KindRSS, URL: failing.URL}))
	_, _, err = p.RunOnce(context.Background())
	fe, ok := rssfeeds.AsFetchError(err)
	if !ok || fe.Status != http.StatusForbidden {
		t.Errorf("err = %v; want wrapped 403", err)
	}
}

func TestNewUsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<rss version="2.0"><channel><title>t</title><item><title>one</title></item></channel></rss>`)
	}))
	defer srv.Close()

	cfg := testConfig(types.Source{Kind: types.KindRSS, URL: srv.URL})
	cfg.Redis = config.RedisConfig{Addr: mr.Addr(), Key: "ncstfeed:test"}

	p := New(cfg)
	defer p.Close()
	if _, _, err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !mr.Exists("ncstfeed:test") {
		t.Error("payload was not written to redis")
	}
}

func TestNewFallsBackWhenRedisDown(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Addr: "127.0.0.1:1"}

	p := New(cfg)
	defer p.Close()
	if p.store == nil {
		t.Fatal("expected in-process store")
	}
}
