package persistence

import (
	"context"
	"fmt"

	"github.com/helixml/markerrange/domain/run"
	"github.com/helixml/markerrange/internal/database"
)

// RunStore implements run.Store using GORM.
type RunStore struct {
	database.Repository[run.Run, RunModel]
}

var _ run.Store = RunStore{}

// NewRunStore creates a new RunStore.
func NewRunStore(db database.Database) RunStore {
	return RunStore{
		Repository: database.NewRepository[run.Run, RunModel](db, RunMapper{}, "render run"),
	}
}

// Save creates or updates a run.
func (s RunStore) Save(ctx context.Context, r run.Run) (run.Run, error) {
	model := s.Mapper().ToModel(r)

	result := s.DB(ctx).Save(&model)
	if result.Error != nil {
		return run.Run{}, fmt.Errorf("save render run: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}
