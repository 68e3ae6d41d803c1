// Command prompttest runs each generator against the configured provider and
// prints the result with its provenance.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"career-coach-backend/internal/bootstrap"
	"career-coach-backend/internal/generation"
	"career-coach-backend/internal/shared/config"
	"career-coach-backend/internal/users"
)

type options struct {
	provider   string
	model      string
	industry   string
	skills     []string
	experience int
	bio        string
	name       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "prompttest",
		Short:         "Exercise career-coach generators from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.provider, "provider", "", "LLM provider override (gemini, openai, none)")
	flags.StringVar(&opts.model, "model", "", "LLM model override")
	flags.StringVar(&opts.industry, "industry", "tech-software-development", "Profile industry")
	flags.StringSliceVar(&opts.skills, "skills", []string{"Go", "PostgreSQL"}, "Profile skills")
	flags.IntVar(&opts.experience, "experience", 5, "Years of experience")
	flags.StringVar(&opts.bio, "bio", "", "Profile bio")
	flags.StringVar(&opts.name, "name", "Test User", "Display name")

	root.AddCommand(
		newCoverLetterCmd(opts),
		newInsightsCmd(opts),
		newQuizCmd(opts),
		newTokenCmd(),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// orchestrator builds the generation orchestrator from env config plus flag
// overrides.
func (o *options) orchestrator(ctx context.Context) (*generation.Orchestrator, error) {
	cfg := config.Load()
	if p := strings.ToLower(strings.TrimSpace(o.provider)); p != "" {
		cfg.LLMProvider = p
	}
	if m := strings.TrimSpace(o.model); m != "" {
		cfg.LLMModel = m
	}
	client, err := bootstrap.BuildLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return generation.New(client, generation.Options{
		Timeout:    cfg.GenerationTimeout,
		MaxRetries: cfg.GenerationRetries,
	}), nil
}

// seedUser stores the flag-described profile in an in-memory user store and
// returns the store with the user's subject.
func (o *options) seedUser(ctx context.Context) (*users.Service, string, error) {
	const subject = "cli:prompttest"
	svc := users.NewService(users.NewMemoryRepo())
	if _, err := svc.EnsureFromIdentity(ctx, users.Identity{
		Subject: subject,
		Email:   "prompttest@example.com",
		Name:    o.name,
	}); err != nil {
		return nil, "", err
	}
	experience := o.experience
	if _, err := svc.UpdateProfile(ctx, subject, users.Profile{
		Industry:   o.industry,
		Experience: &experience,
		Skills:     o.skills,
		Bio:        o.bio,
	}); err != nil {
		return nil, "", err
	}
	return svc, subject, nil
}
