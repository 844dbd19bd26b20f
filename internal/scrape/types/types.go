package types

import (
	"context"

	"careers-engine/internal/domain"
)

// JobSource produces raw job records. Implementations: feed (JSON feed) and
// deel (job board scrape).
type JobSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawJob, error)
}

// PageRenderer returns the HTML of a page after its scripts have run.
type PageRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}
