package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"career-coach-backend/internal/shared/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		email   string
		name    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed JWT for local API calls (uses JWT_SECRET)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now().UTC()
			signed, err := auth.SignJWT(auth.Claims{
				Email: email,
				Name:  name,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   subject,
					IssuedAt:  jwt.NewNumericDate(now),
					ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
				},
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "dev:local", "Token subject")
	cmd.Flags().StringVar(&email, "email", "dev@example.com", "Token email claim")
	cmd.Flags().StringVar(&name, "name", "Dev User", "Token name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
