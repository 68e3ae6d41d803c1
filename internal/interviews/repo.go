package interviews

import "context"

type Repo interface {
	Create(ctx context.Context, assessment Assessment) error
	// ListByUser returns the owner's assessments, oldest first.
	ListByUser(ctx context.Context, userID string) ([]Assessment, error)
}
