package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	// EnsureFromIdentity creates the user when the subject is unknown and
	// returns the stored row. Existing rows are left untouched.
	EnsureFromIdentity(ctx context.Context, user User) (User, error)
	GetBySubject(ctx context.Context, subject string) (User, error)
	UpdateProfile(ctx context.Context, subject string, profile Profile) (User, error)
}
