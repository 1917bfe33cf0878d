package cache

import (
	"context"
	"testing"
	"time"

	"ncstfeed/types"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisConfig{Addr: mr.Addr(), Key: "test:slot"})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty slot: got %v, %v", got, err)
	}

	entry := types.CacheEntry{
		Payload: types.RawPayload{
			Source:    types.Source{Kind: types.KindRSS, Name: "rsshub", URL: "http://feed"},
			Body:      []byte("<rss/>"),
			FetchedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		ExpiresAt: time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC),
	}
	if err := store.Set(ctx, entry, 10*time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := mr.TTL("test:slot"); ttl != 10*time.Minute {
		t.Errorf("key TTL = %v", ttl)
	}

	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || string(got.Payload.Body) != "<rss/>" || got.Payload.Source.Kind != types.KindRSS {
		t.Fatalf("Get = %+v", got)
	}
	if !got.ExpiresAt.Equal(entry.ExpiresAt) {
		t.Errorf("ExpiresAt = %v", got.ExpiresAt)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got, _ := store.Get(ctx); got != nil {
		t.Error("slot should be empty after Clear")
	}
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, types.CacheEntry{ExpiresAt: time.Now().Add(time.Second)}, time.Second); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Second)
	if got, err := store.Get(ctx); err != nil || got != nil {
		t.Errorf("expired key: got %v, %v", got, err)
	}
}

func TestCacheSharedThroughRedis(t *testing.T) {
	store, _ := newTestRedisStore(t)
	f := newFakeFetcher(map[string]fakeResult{"a": {body: feedWith("one")}})
	sources := []types.Source{rssSource("a")}

	// Two caches on one key behave like two service instances
	first := newTestCache(f, store)
	second := newTestCache(f, store)

	if _, err := first.GetOrFetch(context.Background(), sources); err != nil {
		t.Fatal(err)
	}
	p, err := second.GetOrFetch(context.Background(), sources)
	if err != nil {
		t.Fatal(err)
	}
	if string(p.Body) != feedWith("one") {
		t.Errorf("Body = %q", p.Body)
	}
	if f.callCount() != 1 {
		t.Errorf("calls = %d; want 1", f.callCount())
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	if _, err := NewRedisStore(RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected connection error")
	}
}
