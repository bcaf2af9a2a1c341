package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/markerrange/domain/repository"
	"github.com/helixml/markerrange/domain/run"
)

// History lists recorded render runs.
type History struct {
	store run.Store
}

// NewHistory creates a new History. A nil store yields an empty history.
func NewHistory(store run.Store) *History {
	return &History{store: store}
}

// Enabled reports whether runs are being recorded.
func (h *History) Enabled() bool {
	return h.store != nil
}

// List returns runs matching the options, newest first.
func (h *History) List(ctx context.Context, options ...repository.Option) ([]run.Run, error) {
	if h.store == nil {
		return []run.Run{}, nil
	}
	options = append(options, run.WithNewestFirst())
	runs, err := h.store.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (h *History) Get(ctx context.Context, id int64) (run.Run, error) {
	if h.store == nil {
		return run.Run{}, fmt.Errorf("%w: run %d", ErrNotFound, id)
	}
	r, err := h.store.FindOne(ctx, repository.WithID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return run.Run{}, fmt.Errorf("%w: run %d", ErrNotFound, id)
		}
		return run.Run{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// Count returns the number of runs matching the options.
func (h *History) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	if h.store == nil {
		return 0, nil
	}
	n, err := h.store.Count(ctx, options...)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}
