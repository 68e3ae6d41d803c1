package coverletters

import "context"

type Repo interface {
	Create(ctx context.Context, letter CoverLetter) error
	// ListByUser returns the owner's letters, newest first.
	ListByUser(ctx context.Context, userID string) ([]CoverLetter, error)
	GetByID(ctx context.Context, userID, id string) (CoverLetter, error)
	Delete(ctx context.Context, userID, id string) error
}
