package insights

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	insights map[string]IndustryInsight
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{insights: make(map[string]IndustryInsight)}
}

func (r *MemoryRepo) GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error) {
	if err := ctx.Err(); err != nil {
		return IndustryInsight{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	insight, ok := r.insights[industry]
	if !ok {
		return IndustryInsight{}, ErrNotFound
	}
	return insight, nil
}

func (r *MemoryRepo) CreateIfAbsent(ctx context.Context, insight IndustryInsight) (IndustryInsight, error) {
	if err := ctx.Err(); err != nil {
		return IndustryInsight{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.insights[insight.Industry]; ok {
		return existing, nil
	}
	r.insights[insight.Industry] = insight
	return insight, nil
}
