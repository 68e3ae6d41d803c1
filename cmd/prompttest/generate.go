package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"career-coach-backend/internal/coverletters"
	"career-coach-backend/internal/insights"
	"career-coach-backend/internal/interviews"
)

func newCoverLetterCmd(opts *options) *cobra.Command {
	var req coverletters.Request
	cmd := &cobra.Command{
		Use:   "cover-letter",
		Short: "Generate a cover letter for the flag-described profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gen, err := opts.orchestrator(ctx)
			if err != nil {
				return err
			}
			userSvc, subject, err := opts.seedUser(ctx)
			if err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
			svc := coverletters.NewService(userSvc, coverletters.NewMemoryRepo(), gen)
			letter, err := svc.Generate(ctx, subject, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", letter.Source)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), letter.Content)
			return err
		},
	}
	cmd.Flags().StringVar(&req.JobTitle, "job-title", "Backend Engineer", "Target job title")
	cmd.Flags().StringVar(&req.CompanyName, "company", "Acme", "Target company")
	cmd.Flags().StringVar(&req.JobDescription, "job-description", "", "Job description text")
	return cmd
}

func newInsightsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Generate industry insights for --industry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gen, err := opts.orchestrator(ctx)
			if err != nil {
				return err
			}
			userSvc, subject, err := opts.seedUser(ctx)
			if err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
			svc := insights.NewService(userSvc, insights.NewMemoryRepo(), gen)
			insight, err := svc.GetForUser(ctx, subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", insight.Source)
			return writeJSON(cmd.OutOrStdout(), insight)
		},
	}
}

func newQuizCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Generate an interview quiz for the flag-described profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			gen, err := opts.orchestrator(ctx)
			if err != nil {
				return err
			}
			userSvc, subject, err := opts.seedUser(ctx)
			if err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
			svc := interviews.NewService(userSvc, interviews.NewMemoryRepo(), gen)
			quiz, err := svc.GenerateQuiz(ctx, subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", quiz.Source)
			return writeJSON(cmd.OutOrStdout(), quiz.Questions)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
