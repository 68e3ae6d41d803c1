package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-coach-backend/internal/generation"
	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/shared/telemetry"
	"career-coach-backend/internal/users"
)

const feature = "industry_insights"

// UserLookup resolves an identity subject to a stored user.
type UserLookup interface {
	GetBySubject(ctx context.Context, subject string) (users.User, error)
}

type Service struct {
	Users UserLookup
	Repo  Repo
	Gen   *generation.Orchestrator
	Now   func() time.Time
}

func NewService(lookup UserLookup, repo Repo, gen *generation.Orchestrator) *Service {
	return &Service{
		Users: lookup,
		Repo:  repo,
		Gen:   gen,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetForUser returns the insight for the caller's industry, generating and
// storing it on first request. Stored insights are never regenerated.
func (s *Service) GetForUser(ctx context.Context, subject string) (IndustryInsight, error) {
	if s == nil || s.Users == nil || s.Repo == nil {
		return IndustryInsight{}, errors.New("insights service not configured")
	}
	if strings.TrimSpace(subject) == "" {
		return IndustryInsight{}, ErrUnauthorized
	}
	user, err := s.Users.GetBySubject(ctx, subject)
	if err != nil {
		return IndustryInsight{}, err
	}
	industry := IndustryKey(user.Industry)
	if industry == "" {
		return IndustryInsight{}, ErrProfileIncomplete
	}

	existing, err := s.Repo.GetByIndustry(ctx, industry)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return IndustryInsight{}, fmt.Errorf("load industry insight: %w", err)
	}

	res := generation.JSON(ctx, s.Gen, feature, BuildPrompt(industry), fallbackFor(s.Gen), checkPayload)

	now := s.now()
	insight := IndustryInsight{
		ID:          uuid.NewString(),
		Industry:    industry,
		Payload:     res.Value,
		Source:      string(res.Source),
		LastUpdated: now,
		NextUpdate:  now.Add(RefreshInterval),
	}
	stored, err := s.Repo.CreateIfAbsent(ctx, insight)
	if err != nil {
		return IndustryInsight{}, fmt.Errorf("save industry insight: %w", err)
	}
	telemetry.Info("insights.created",
		zap.String("industry", industry),
		zap.String("source", stored.Source),
		zap.Bool("won", stored.ID == insight.ID),
	)
	return stored, nil
}

// IndustryKey is the stored form of an industry. Repositories and the cache
// match it exactly, so "Tech" and "tech " share one insight.
func IndustryKey(industry string) string {
	return strings.ToLower(strings.TrimSpace(industry))
}

// BuildPrompt assembles the insights prompt for an industry.
func BuildPrompt(industry string) string {
	return llm.Render(llm.PromptIndustryInsights, map[string]string{"INDUSTRY": industry})
}

func checkPayload(p Payload) error {
	if len(p.SalaryRanges) == 0 {
		return errors.New("salaryRanges must be a non-empty array")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
