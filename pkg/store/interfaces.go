package store

import (
	"context"
	"time"

	"gradescan/pkg/grade"
)

// Run is one persisted scan: its provenance, summary figures, and series.
type Run struct {
	ID        string
	Source    string // input file path
	TrackName string
	Window    int
	Points    int
	Distance  float64 // total 3D distance in meters
	Elapsed   float64 // total time in seconds
	Max       grade.Extremum
	Min       grade.Extremum
	CreatedAt time.Time

	// Records is empty for list results; GetRun loads the full series.
	Records []grade.Record
}

// RunStore handles scan-run persistence.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]*Run, error)
}
