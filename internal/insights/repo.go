package insights

import "context"

type Repo interface {
	GetByIndustry(ctx context.Context, industry string) (IndustryInsight, error)
	// CreateIfAbsent stores insight unless the industry already has a row,
	// and returns whichever row is stored.
	CreateIfAbsent(ctx context.Context, insight IndustryInsight) (IndustryInsight, error)
}
