package interviews

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

const (
	quizFeature = "interview_quiz"
	tipFeature  = "improvement_tip"
)

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

// GenerateQuiz returns a question batch for the caller. It is not persisted.
func (s *Service) GenerateQuiz(ctx context.Context, subject string) (Quiz, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return Quiz{}, err
	}
	type payload struct {
		Questions []Question `json:"questions"`
	}
	res := generation.JSON(ctx, s.Gen, quizFeature, BuildQuizPrompt(user),
		payload{Questions: fallbackQuestions()},
		func(p payload) error {
			if len(p.Questions) == 0 {
				return errors.New("questions must be a non-empty array")
			}
			return nil
		})
	return Quiz{Questions: res.Value.Questions, Source: string(res.Source)}, nil
}

// SaveResult grades a submission and stores the assessment. Any score sent
// by the client is ignored; the score is recomputed here.
func (s *Service) SaveResult(ctx context.Context, subject string, sub Submission) (Assessment, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return Assessment{}, err
	}
	if err := s.validator().Struct(sub); err != nil {
		return Assessment{}, fmt.Errorf("%w: questions and answers are required", ErrInvalidInput)
	}
	if len(sub.Questions) != len(sub.Answers) {
		return Assessment{}, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidInput, len(sub.Answers), len(sub.Questions))
	}

	results, score := Grade(sub.Questions, sub.Answers)

	var tip *string
	if wrong := wrongAnswers(results); len(wrong) > 0 && s.Gen.Enabled() {
		res := s.Gen.Text(ctx, tipFeature, BuildTipPrompt(user.Industry, wrong), "")
		if res.Generated() {
			tip = &res.Value
		}
	}

	now := s.now()
	assessment := Assessment{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       CategoryTechnical,
		ImprovementTip: tip,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, assessment); err != nil {
		return Assessment{}, fmt.Errorf("save assessment: %w", err)
	}
	telemetry.Info("assessment.created",
		zap.String("assessment_id", assessment.ID),
		zap.String("user_id", user.ID),
		zap.Float64("score", score),
		zap.Bool("has_tip", tip != nil),
	)
	return assessment, nil
}

// ListAssessments returns the caller's assessments, oldest first.
func (s *Service) ListAssessments(ctx context.Context, subject string) ([]Assessment, error) {
	user, err := s.owner(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, user.ID)
}

func (s *Service) owner(ctx context.Context, subject string) (users.User, error) {
	if s == nil || s.Users == nil || s.Repo == nil {
		return users.User{}, errors.New("interviews service not configured")
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
