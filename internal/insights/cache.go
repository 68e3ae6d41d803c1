package insights

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"career-coach-backend/internal/shared/telemetry"
)

const cacheKeyPrefix = "insights:"

// Cache stores insights keyed by industry.
type Cache interface {
	Get(ctx context.Context, industry string) (IndustryInsight, bool, error)
	Set(ctx context.Context, insight IndustryInsight, ttl time.Duration) error
}

// RedisCache keeps JSON-encoded insights in Redis.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Get(ctx context.Context, industry string) (IndustryInsight, bool, error) {
	raw, err := c.Client.Get(ctx, cacheKey(industry)).Bytes()
	if errors.Is(err, redis.Nil) {
		return IndustryInsight{}, false, nil
	}
	if err != nil {
		return IndustryInsight{}, false, err
	}
	var insight IndustryInsight
	if err := json.Unmarshal(raw, &insight); err != nil {
		return IndustryInsight{}, false, err
	}
	return insight, true, nil
}

func (c *RedisCache) Set(ctx context.Context, insight IndustryInsight, ttl time.Duration) error {
	raw, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, cacheKey(insight.Industry), raw, ttl).Err()
}

func cacheKey(industry string) string {
	return cacheKeyPrefix + industry
}

// CachedRepo reads through Cache in front of Repo. Cache failures are
// logged and otherwise ignored.
type CachedRepo struct {
	Repo  Repo
	Cache Cache
	Now   func() time.Time
}

func (r *CachedRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	if insight, ok, err := r.Cache.Get(ctx, industry); err != nil {
		telemetry.Warn("insights.cache_get_failed", zap.String("industry", industry), zap.Error(err))
	} else if ok {
		return insight, nil
	}

	insight, err := r.Repo.GetByIndustry(ctx, industry)
	if err != nil {
		return IndustryInsight{}, err
	}
	r.store(ctx, insight)
	return insight, nil
}

func (r *CachedRepo) CreateIfAbsent(ctx context.Context, insight IndustryInsight) (IndustryInsight, error) {
	stored, err := r.Repo.CreateIfAbsent(ctx, insight)
	if err != nil {
		return IndustryInsight{}, err
	}
	r.store(ctx, stored)
	return stored, nil
}

func (r *CachedRepo) store(ctx context.Context, insight IndustryInsight) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	ttl := insight.NextUpdate.Sub(now)
	if ttl <= 0 {
		return
	}
	if err := r.Cache.Set(ctx, insight, ttl); err != nil {
		telemetry.Warn("insights.cache_set_failed", zap.String("industry", insight.Industry), zap.Error(err))
	}
}
