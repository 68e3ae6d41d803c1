package interviews

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu          sync.RWMutex
	assessments []Assessment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, assessment Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessments = append(r.assessments, cloneAssessment(assessment))
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Assessment, 0)
	for _, a := range r.assessments {
		if a.UserID == userID {
			out = append(out, cloneAssessment(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneAssessment(a Assessment) Assessment {
	a.Questions = append([]QuestionResult(nil), a.Questions...)
	if a.ImprovementTip != nil {
		tip := *a.ImprovementTip
		a.ImprovementTip = &tip
	}
	return a
}
