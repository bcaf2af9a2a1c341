// Package run records render attempts so past renders can be reviewed.
package run

import (
	"time"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
)

// Status is the lifecycle state of a render run.
type Status string

// Status values.
const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal returns true if the status is final.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Run is one attempt at rendering a range.
type Run struct {
	id         int64
	rangeID    string
	name       string
	startFrame int
	endFrame   int
	mode       render.Mode
	outputPath string
	status     Status
	errMessage string
	startedAt  time.Time
	finishedAt time.Time
}

// NewRun starts a run for the given range.
func NewRun(rng marker.Range, mode render.Mode, outputPath string) Run {
	return Run{
		rangeID:    rng.ID(),
		name:       rng.Name(),
		startFrame: rng.StartFrame(),
		endFrame:   rng.EndFrame(),
		mode:       mode,
		outputPath: outputPath,
		status:     StatusRunning,
		startedAt:  time.Now().UTC(),
	}
}

// Reconstruct creates a Run with all fields (used by repository).
func Reconstruct(
	id int64,
	rangeID, name string,
	startFrame, endFrame int,
	mode render.Mode,
	outputPath string,
	status Status,
	errMessage string,
	startedAt, finishedAt time.Time,
) Run {
	return Run{
		id:         id,
		rangeID:    rangeID,
		name:       name,
		startFrame: startFrame,
		endFrame:   endFrame,
		mode:       mode,
		outputPath: outputPath,
		status:     status,
		errMessage: errMessage,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

// ID returns the run ID (zero until persisted).
func (r Run) ID() int64 { return r.id }

// RangeID returns the ID of the rendered range.
func (r Run) RangeID() string { return r.rangeID }

// Name returns the range name.
func (r Run) Name() string { return r.name }

// StartFrame returns the first rendered frame.
func (r Run) StartFrame() int { return r.startFrame }

// EndFrame returns the last rendered frame.
func (r Run) EndFrame() int { return r.endFrame }

// Mode returns the render mode.
func (r Run) Mode() render.Mode { return r.mode }

// OutputPath returns the output path the range rendered to.
func (r Run) OutputPath() string { return r.outputPath }

// Status returns the run status.
func (r Run) Status() Status { return r.status }

// Error returns the failure message, if any.
func (r Run) Error() string { return r.errMessage }

// StartedAt returns when the run started.
func (r Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run finished (zero while running).
func (r Run) FinishedAt() time.Time { return r.finishedAt }

// Duration returns how long the run took, or zero while running.
func (r Run) Duration() time.Duration {
	if r.finishedAt.IsZero() {
		return 0
	}
	return r.finishedAt.Sub(r.startedAt)
}

// WithID returns a copy of the run with the given ID.
func (r Run) WithID(id int64) Run {
	r.id = id
	return r
}

// Succeed returns a copy of the run marked as succeeded.
func (r Run) Succeed() Run {
	r.status = StatusSucceeded
	r.errMessage = ""
	r.finishedAt = time.Now().UTC()
	return r
}

// Fail returns a copy of the run marked as failed with the given cause.
func (r Run) Fail(err error) Run {
	r.status = StatusFailed
	if err != nil {
		r.errMessage = err.Error()
	}
	r.finishedAt = time.Now().UTC()
	return r
}
