package insights

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCache struct {
	mu     sync.Mutex
	items  map[string]IndustryInsight
	ttls   map[string]time.Duration
	getErr error
	setErr error
	gets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]IndustryInsight{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) Get(_ context.Context, industry string) (IndustryInsight, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return IndustryInsight{}, false, f.getErr
	}
	insight, ok := f.items[cacheKey(industry)]
	return insight, ok, nil
}

func (f *fakeCache) Set(_ context.Context, insight IndustryInsight, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.items[cacheKey(insight.Industry)] = insight
	f.ttls[cacheKey(insight.Industry)] = ttl
	return nil
}

type countingRepo struct {
	*MemoryRepo
	reads int
}

func (r *countingRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	r.reads++
	return r.MemoryRepo.GetByIndustry(ctx, industry)
}

func TestCachedRepoWritesThroughWithTTLUntilNextUpdate(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	cache := newFakeCache()
	backing := &countingRepo{MemoryRepo: NewMemoryRepo()}
	repo := &CachedRepo{Repo: backing, Cache: cache, Now: func() time.Time { return now }}
	ctx := context.Background()

	insight := IndustryInsight{ID: "i-1", Industry: "Retail", NextUpdate: now.Add(RefreshInterval)}
	if _, err := repo.CreateIfAbsent(ctx, insight); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if got := cache.ttls["insights:retail"]; got != RefreshInterval {
		t.Fatalf("expected ttl %s, got %s", RefreshInterval, got)
	}

	got, err := repo.GetByIndustry(ctx, "Retail")
	if err != nil {
		t.Fatalf("GetByIndustry: %v", err)
	}
	if got.ID != "i-1" {
		t.Fatalf("unexpected insight %+v", got)
	}
	if backing.reads != 0 {
		t.Fatalf("expected cache hit, repo read %d times", backing.reads)
	}
}

func TestCachedRepoIgnoresCacheFailures(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	backing := &countingRepo{MemoryRepo: NewMemoryRepo()}
	repo := &CachedRepo{Repo: backing, Cache: cache}
	ctx := context.Background()

	if _, err := repo.CreateIfAbsent(ctx, IndustryInsight{ID: "i-1", Industry: "Retail", NextUpdate: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	got, err := repo.GetByIndustry(ctx, "Retail")
	if err != nil {
		t.Fatalf("GetByIndustry: %v", err)
	}
	if got.ID != "i-1" || backing.reads != 1 {
		t.Fatalf("expected repo read, got %+v (reads %d)", got, backing.reads)
	}
}

func TestCachedRepoSkipsExpiredInsights(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	cache := newFakeCache()
	repo := &CachedRepo{Repo: NewMemoryRepo(), Cache: cache, Now: func() time.Time { return now }}

	if _, err := repo.CreateIfAbsent(context.Background(), IndustryInsight{ID: "i-1", Industry: "Retail", NextUpdate: now.Add(-time.Hour)}); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if len(cache.items) != 0 {
		t.Fatalf("expected no cache entry for an overdue insight")
	}
}

func TestCachedRepoMissPropagatesNotFound(t *testing.T) {
	repo := &CachedRepo{Repo: NewMemoryRepo(), Cache: newFakeCache()}
	if _, err := repo.GetByIndustry(context.Background(), "Unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisCacheUnreachableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewRedisCache(client)

	if _, _, err := cache.Get(context.Background(), "Retail"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	repo := &CachedRepo{Repo: NewMemoryRepo(), Cache: cache}
	if _, err := repo.CreateIfAbsent(context.Background(), IndustryInsight{ID: "i-1", Industry: "Retail", NextUpdate: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("cache failure must not fail the write: %v", err)
	}
}

func TestCacheKeyUsesStoredIndustry(t *testing.T) {
	if got := cacheKey(IndustryKey("  Software Engineering ")); got != "insights:software engineering" {
		t.Fatalf("unexpected key %q", got)
	}
}
