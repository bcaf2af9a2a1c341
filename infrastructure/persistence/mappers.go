package persistence

import (
	"time"

	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/run"
)

// RunMapper maps between run.Run and RunModel.
type RunMapper struct{}

// ToDomain converts a RunModel to a domain Run.
func (m RunMapper) ToDomain(e RunModel) run.Run {
	var finished time.Time
	if e.FinishedAt != nil {
		finished = *e.FinishedAt
	}
	return run.Reconstruct(
		e.ID,
		e.RangeID,
		e.Name,
		e.StartFrame,
		e.EndFrame,
		render.Mode(e.Mode),
		e.OutputPath,
		run.Status(e.Status),
		e.Error,
		e.StartedAt,
		finished,
	)
}

// ToModel converts a domain Run to a RunModel.
func (m RunMapper) ToModel(r run.Run) RunModel {
	var finished *time.Time
	if !r.FinishedAt().IsZero() {
		f := r.FinishedAt()
		finished = &f
	}
	return RunModel{
		ID:         r.ID(),
		RangeID:    r.RangeID(),
		Name:       r.Name(),
		StartFrame: r.StartFrame(),
		EndFrame:   r.EndFrame(),
		Mode:       string(r.Mode()),
		OutputPath: r.OutputPath(),
		Status:     string(r.Status()),
		Error:      r.Error(),
		StartedAt:  r.StartedAt(),
		FinishedAt: finished,
	}
}
