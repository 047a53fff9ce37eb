package pipeline

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Result is the outcome of one repair run. The dataset is always
// usable; Converged distinguishes a clean final detection pass from an
// exhausted iteration budget, and Report holds whatever that final
// pass still found.
type Result struct {
	// Dataset is the repaired dataset, best-effort when not converged.
	Dataset *tabular.Dataset

	// Converged reports whether the final detection pass was clean.
	Converged bool

	// Iterations is the number of correction passes that ran.
	Iterations int

	// Report is the final detection report; empty when converged.
	Report *detect.Report

	// Changes is the accumulated change log across all passes.
	Changes *changelog.Log

	// Metadata describes the run itself.
	Metadata Metadata
}

// Metadata captures timing and volume statistics for a run.
type Metadata struct {
	StartTime utc.Time
	EndTime   utc.Time
	Duration  time.Duration
	RowsIn    int
	RowsOut   int
	Changes   map[changelog.Action]int
}

func newMetadata(start utc.Time, rowsIn, rowsOut int, log *changelog.Log) Metadata {
	end := utc.Now()
	return Metadata{
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		RowsIn:    rowsIn,
		RowsOut:   rowsOut,
		Changes:   log.Summary(),
	}
}

// RemainingIssues returns how many cell issues the final detection
// pass still reported.
func (r *Result) RemainingIssues() int {
	if r.Report == nil {
		return 0
	}
	return r.Report.IssueCount()
}

// RemainingDuplicates returns how many duplicate rows the final
// detection pass still reported.
func (r *Result) RemainingDuplicates() int {
	if r.Report == nil {
		return 0
	}
	return len(r.Report.Duplicates())
}
