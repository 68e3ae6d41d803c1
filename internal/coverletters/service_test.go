package coverletters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"career-coach-backend/internal/generation"
	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/users"
)

type stubUsers struct {
	users map[string]users.User
}

func (s stubUsers) GetBySubject(_ context.Context, subject string) (users.User, error) {
	user, ok := s.users[subject]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return user, nil
}

type stubClient struct {
	text  string
	err   error
	calls int
}

func (c *stubClient) Name() string { return "stub" }

func (c *stubClient) Generate(context.Context, llm.Request) (string, error) {
	c.calls++
	return c.text, c.err
}

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(context.Context, CoverLetter) error {
	return errors.New("db down")
}

func acmeUsers() stubUsers {
	return stubUsers{users: map[string]users.User{
		"google:ada": {
			ID:         "owner-ada",
			Subject:    "google:ada",
			Name:       "Ada Lovelace",
			Industry:   "Software Engineering",
			Experience: intPtr(5),
			Skills:     []string{"Go", "PostgreSQL", "Kubernetes"},
		},
		"google:bob": {ID: "owner-bob", Subject: "google:bob", Name: "Bob"},
	}}
}

func TestGenerateFallbackWhenDisabled(t *testing.T) {
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.Disabled())

	letter, err := svc.Generate(context.Background(), "google:ada", Request{
		JobTitle:       "Backend Engineer",
		CompanyName:    "Acme",
		JobDescription: "Build APIs",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if letter.Source != string(generation.SourceFallback) || letter.Status != StatusCompleted {
		t.Fatalf("unexpected letter: %+v", letter)
	}
	if letter.UserID != "owner-ada" {
		t.Fatalf("expected owner id, got %q", letter.UserID)
	}
	for _, want := range []string{
		"Backend Engineer role at Acme",
		"With 5 years of experience",
		"strengths in Go, PostgreSQL, Kubernetes",
		"background in Software Engineering",
		"support Acme",
		"Ada Lovelace",
	} {
		if !strings.Contains(letter.Content, want) {
			t.Fatalf("fallback letter missing %q:\n%s", want, letter.Content)
		}
	}
}

func TestGenerateFallbackIsIdempotent(t *testing.T) {
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.Disabled())
	req := Request{JobTitle: "Backend Engineer", CompanyName: "Acme"}

	first, err := svc.Generate(context.Background(), "google:ada", req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), "google:ada", req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Content != second.Content {
		t.Fatalf("fallback letters differ")
	}
	if first.ID == second.ID {
		t.Fatalf("each call must persist a new letter")
	}
}

func TestGenerateUsesProviderText(t *testing.T) {
	client := &stubClient{text: "  # Dear Acme\n\nHire me.  "}
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.New(client, generation.Options{}))

	letter, err := svc.Generate(context.Background(), "google:ada", Request{JobTitle: "Engineer", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if letter.Content != "# Dear Acme\n\nHire me." || letter.Source != string(generation.SourceAI) {
		t.Fatalf("unexpected letter: %+v", letter)
	}
	if client.calls != 1 {
		t.Fatalf("expected one provider call, got %d", client.calls)
	}
}

func TestGenerateProviderErrorFallsBack(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.New(client, generation.Options{}))

	letter, err := svc.Generate(context.Background(), "google:ada", Request{JobTitle: "Engineer", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if letter.Source != string(generation.SourceFallback) || !strings.HasPrefix(letter.Content, "Dear Hiring Manager,") {
		t.Fatalf("expected fallback letter, got %+v", letter)
	}
}

func TestGenerateErrors(t *testing.T) {
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.Disabled())
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "", Request{JobTitle: "x", CompanyName: "y"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Generate(ctx, "google:ghost", Request{JobTitle: "x", CompanyName: "y"}); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected users.ErrNotFound, got %v", err)
	}
	if _, err := svc.Generate(ctx, "google:ada", Request{JobTitle: "   ", CompanyName: "Acme"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGeneratePropagatesPersistenceFailure(t *testing.T) {
	svc := NewService(acmeUsers(), failingRepo{NewMemoryRepo()}, generation.Disabled())
	if _, err := svc.Generate(context.Background(), "google:ada", Request{JobTitle: "x", CompanyName: "y"}); err == nil {
		t.Fatalf("expected persistence error")
	}
}

func TestListGetDeleteAreOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(acmeUsers(), repo, generation.Disabled())
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	older, _ := svc.Generate(ctx, "google:ada", Request{JobTitle: "First", CompanyName: "Acme"})
	newer, _ := svc.Generate(ctx, "google:ada", Request{JobTitle: "Second", CompanyName: "Acme"})
	bobs, _ := svc.Generate(ctx, "google:bob", Request{JobTitle: "Bob", CompanyName: "Acme"})

	list, err := svc.List(ctx, "google:ada")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if _, err := svc.Get(ctx, "google:ada", bobs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner's letter, got %v", err)
	}
	if err := svc.Delete(ctx, "google:ada", bobs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting another owner's letter, got %v", err)
	}
	if err := svc.Delete(ctx, "google:ada", older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "google:ada", older.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted letter to be gone, got %v", err)
	}
}

// uuidColumnRepo fails like Postgres does when a non-uuid id reaches a uuid column.
type uuidColumnRepo struct {
	*MemoryRepo
}

func (uuidColumnRepo) GetByID(context.Context, string, string) (CoverLetter, error) {
	return CoverLetter{}, errors.New(`invalid input syntax for type uuid: "abc"`)
}

func (uuidColumnRepo) Delete(context.Context, string, string) error {
	return errors.New(`invalid input syntax for type uuid: "abc"`)
}

func TestGetDeleteMalformedIDIsNotFound(t *testing.T) {
	svc := NewService(acmeUsers(), uuidColumnRepo{NewMemoryRepo()}, generation.Disabled())
	ctx := context.Background()

	for _, id := range []string{"abc", "  ", "123", "not-a-uuid-at-all"} {
		if _, err := svc.Get(ctx, "google:ada", id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
		if err := svc.Delete(ctx, "google:ada", id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Delete(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}
