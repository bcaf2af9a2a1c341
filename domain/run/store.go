package run

import (
	"context"

	"github.com/helixml/markerrange/domain/repository"
)

// Store persists render runs.
type Store interface {
	Save(ctx context.Context, r Run) (Run, error)
	Find(ctx context.Context, options ...repository.Option) ([]Run, error)
	FindOne(ctx context.Context, options ...repository.Option) (Run, error)
	Count(ctx context.Context, options ...repository.Option) (int64, error)
}

// WithRangeID filters by the "range_id" column.
func WithRangeID(id string) repository.Option {
	return repository.Where("range_id", id)
}

// WithStatus filters by the "status" column.
func WithStatus(s Status) repository.Option {
	return repository.Where("status", string(s))
}

// WithNewestFirst orders runs by start time, most recent first.
func WithNewestFirst() repository.Option {
	return func(q *repository.Query) {
		repository.OrderBy("started_at", repository.Descending)(q)
		repository.OrderBy("id", repository.Descending)(q)
	}
}
