package coverletters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-coach-backend/internal/generation"
	"career-coach-backend/internal/shared/telemetry"
	"career-coach-backend/internal/users"
)

const feature = "cover_letter"

// UserLookup resolves an identity subject to a stored user.
type UserLookup interface {
	GetBySubject(ctx context.Context, subject string) (users.User, error)
}

type Service struct {
	Users    UserLookup
	Repo     Repo
	Gen      *generation.Orchestrator
	Now      func() time.Time
	validate *validator.Validate
}

func NewService(lookup UserLookup, repo Repo, gen *generation.Orchestrator) *Service {
	return &Service{
		Users:    lookup,
		Repo:     repo,
		Gen:      gen,
		Now:      func() time.Time { return time.Now().UTC() },
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Generate writes a cover letter for the caller. Generation failures fall
// back to the templated letter; persistence failures are returned.
func (s *Service) Generate(ctx context.Context, subject string, req Request) (CoverLetter, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return CoverLetter{}, err
	}

	req = sanitize(req)
	if err := s.validator().Struct(req); err != nil {
		return CoverLetter{}, fmt.Errorf("%w: jobTitle and companyName are required", ErrInvalidInput)
	}

	res := s.Gen.Text(ctx, feature, BuildPrompt(user, req), BuildFallback(user, req))

	now := s.now()
	letter := CoverLetter{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Content:        res.Value,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         StatusCompleted,
		Source:         string(res.Source),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, letter); err != nil {
		return CoverLetter{}, fmt.Errorf("save cover letter: %w", err)
	}
	telemetry.Info("cover_letter.created",
		zap.String("cover_letter_id", letter.ID),
		zap.String("user_id", user.ID),
		zap.String("source", letter.Source),
	)
	return letter, nil
}

func (s *Service) List(ctx context.Context, subject string) ([]CoverLetter, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, user.ID)
}

func (s *Service) Get(ctx context.Context, subject, id string) (CoverLetter, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return CoverLetter{}, err
	}
	if !validID(id) {
		return CoverLetter{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, user.ID, id)
}

func (s *Service) Delete(ctx context.Context, subject, id string) error {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, user.ID, id)
}

// validID reports whether id can name a stored letter. Ids are uuids, so
// anything else is reported as not found before reaching storage.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) owner(ctx context.Context, subject string) (users.User, error) {
	if s == nil || s.Users == nil || s.Repo == nil {
		return users.User{}, errors.New("cover letter service not configured")
	}
	if strings.TrimSpace(subject) == "" {
		return users.User{}, ErrUnauthorized
	}
	return s.Users.GetBySubject(ctx, subject)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s.validate
}
