package jsonapi

import (
	"strconv"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/run"
)

// Resource types.
const (
	TypeRange        = "range"
	TypeRun          = "run"
	TypeRenderResult = "render-result"
)

// RangeAttributes are the attributes of a range resource.
type RangeAttributes struct {
	Name       string `json:"name"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	Frames     int    `json:"frames"`
	Label      string `json:"label"`
	OutputPath string `json:"output_path,omitempty"`
}

// RunAttributes are the attributes of a run resource.
type RunAttributes struct {
	RangeID    string   `json:"range_id"`
	Name       string   `json:"name"`
	StartFrame int      `json:"start_frame"`
	EndFrame   int      `json:"end_frame"`
	Mode       string   `json:"mode"`
	OutputPath string   `json:"output_path"`
	Status     string   `json:"status"`
	Error      string   `json:"error,omitempty"`
	StartedAt  DateTime `json:"started_at"`
	FinishedAt DateTime `json:"finished_at"`
	DurationMS int64    `json:"duration_ms"`
}

// RenderResultAttributes summarise a render request.
type RenderResultAttributes struct {
	Mode     string   `json:"mode"`
	Rendered int      `json:"rendered"`
	Ranges   []string `json:"ranges"`
}

// RangeResource converts a range. base is the scene's output path; when
// empty the output path attribute is omitted.
func RangeResource(r marker.Range, base string) *Resource {
	attrs := RangeAttributes{
		Name:       r.Name(),
		StartFrame: r.StartFrame(),
		EndFrame:   r.EndFrame(),
		Frames:     r.Frames(),
		Label:      r.Label(),
	}
	if base != "" {
		attrs.OutputPath = r.OutputPath(base)
	}
	return NewResource(TypeRange, r.ID(), attrs)
}

// RangeResources converts a list of ranges.
func RangeResources(ranges []marker.Range, base string) []*Resource {
	result := make([]*Resource, len(ranges))
	for i, r := range ranges {
		result[i] = RangeResource(r, base)
	}
	return result
}

// RunResource converts a recorded run.
func RunResource(r run.Run) *Resource {
	return NewResource(TypeRun, strconv.FormatInt(r.ID(), 10), RunAttributes{
		RangeID:    r.RangeID(),
		Name:       r.Name(),
		StartFrame: r.StartFrame(),
		EndFrame:   r.EndFrame(),
		Mode:       r.Mode().String(),
		OutputPath: r.OutputPath(),
		Status:     string(r.Status()),
		Error:      r.Error(),
		StartedAt:  DateTime(r.StartedAt()),
		FinishedAt: DateTime(r.FinishedAt()),
		DurationMS: r.Duration().Milliseconds(),
	})
}

// RunResources converts a list of runs.
func RunResources(runs []run.Run) []*Resource {
	result := make([]*Resource, len(runs))
	for i, r := range runs {
		result[i] = RunResource(r)
	}
	return result
}

// RenderResultResource summarises the ranges rendered by one request.
func RenderResultResource(mode string, rendered []marker.Range) *Resource {
	ids := make([]string, len(rendered))
	for i, r := range rendered {
		ids[i] = r.ID()
	}
	return NewResource(TypeRenderResult, mode, RenderResultAttributes{
		Mode:     mode,
		Rendered: len(rendered),
		Ranges:   ids,
	})
}
