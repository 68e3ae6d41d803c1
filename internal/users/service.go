package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"career-coach-backend/internal/shared/util"
)

type Service struct {
	Repo     Repo
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// EnsureFromIdentity returns the user for the identity, creating it on first
// sight. Concurrent first calls converge on a single row.
func (s *Service) EnsureFromIdentity(ctx context.Context, identity Identity) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	subject := strings.TrimSpace(identity.Subject)
	if subject == "" {
		return User{}, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	return s.Repo.EnsureFromIdentity(ctx, User{
		ID:       uuid.NewString(),
		Subject:  subject,
		Email:    strings.TrimSpace(identity.Email),
		Name:     strings.TrimSpace(identity.Name),
		ImageURL: strings.TrimSpace(identity.ImageURL),
		Skills:   []string{},
	})
}

func (s *Service) GetBySubject(ctx context.Context, subject string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(subject) == "" {
		return User{}, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	return s.Repo.GetBySubject(ctx, subject)
}

// UpdateProfile validates and stores the career profile used by the
// generators.
func (s *Service) UpdateProfile(ctx context.Context, subject string, profile Profile) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(subject) == "" {
		return User{}, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	profile.Industry = strings.TrimSpace(profile.Industry)
	profile.Bio = strings.TrimSpace(profile.Bio)
	profile.Skills = util.CleanList(profile.Skills)
	if err := s.validator().Struct(profile); err != nil {
		return User{}, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}
	return s.Repo.UpdateProfile(ctx, subject, profile)
}

func (s *Service) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s.validate
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
