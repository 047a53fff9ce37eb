// Package pipeline drives the repair loop: detect issues, correct what
// has a deterministic fix, enrich what remains, and repeat until a
// detection pass comes back clean or the iteration budget runs out.
// The loop always returns a dataset; convergence is reported alongside
// it, never as an error.
package pipeline

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/errors"
	"github.com/agentstation/scrub/pkg/logging"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Phase names one stage of a repair pass, reported to pass hooks.
type Phase string

const (
	// PhaseDetect is the read-only validation stage.
	PhaseDetect Phase = "detect"
	// PhaseCorrect is the deterministic repair stage.
	PhaseCorrect Phase = "correct"
	// PhaseEnrich is the external fill and derivation stage.
	PhaseEnrich Phase = "enrich"
)

// PassHook observes the loop: it is called after each stage with the
// pass number and how many findings or changes the stage produced.
type PassHook func(pass int, phase Phase, count int)

// Pipeline runs the convergence loop over a dataset.
type Pipeline struct {
	options *options
}

// New creates a pipeline. Without options it uses the default engines,
// the embedded reference data, and the default iteration budget.
func New(opts ...Option) (*Pipeline, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{options: options}, nil
}

// Run repairs the dataset until a detection pass finds nothing or the
// iteration budget is exhausted. The input dataset is never mutated.
// The returned result always carries a dataset and the accumulated
// change log; only cancellation returns an error.
func (p *Pipeline) Run(ctx context.Context, d *tabular.Dataset) (*Result, error) {
	start := utc.Now()
	log := changelog.NewLog()
	current := d.Clone()
	rowsIn := current.Len()

	converged := false
	iterations := 0
	var report *detect.Report

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}

		report = p.options.detector.Detect(current)
		p.notify(iterations+1, PhaseDetect, report.IssueCount()+len(report.Duplicates()))

		if report.Empty() {
			converged = true
			break
		}
		if iterations >= p.options.maxIterations {
			logging.FromContext(ctx).Warn().
				Int("iterations", iterations).
				Int("remaining_issues", report.IssueCount()).
				Int("remaining_duplicates", len(report.Duplicates())).
				Msg("iteration budget exhausted, returning best-effort dataset")
			break
		}

		iterations++
		log.BeginPass(iterations)

		corrected, records := p.options.corrector.Correct(current, report)
		log.Append(records...)
		p.notify(iterations, PhaseCorrect, len(records))
		current = corrected

		// Corrections are re-validated by the next detection pass, so
		// enrichment only looks at what is still missing now.
		if missingRecognized(current) > 0 {
			enriched, records := p.options.enricher.Enrich(ctx, current)
			log.Append(records...)
			p.notify(iterations, PhaseEnrich, len(records))
			current = enriched
		}
	}

	result := &Result{
		Dataset:    current,
		Converged:  converged,
		Iterations: iterations,
		Report:     report,
		Changes:    log,
		Metadata:   newMetadata(start, rowsIn, current.Len(), log),
	}

	logging.FromContext(ctx).Info().
		Bool("converged", converged).
		Int("iterations", iterations).
		Int("changes", log.Len()).
		Msg("repair run complete")

	return result, nil
}

// notify invokes the registered pass hooks in order.
func (p *Pipeline) notify(pass int, phase Phase, count int) {
	for _, hook := range p.options.hooks {
		hook(pass, phase, count)
	}
}

// missingRecognized counts the missing cells in recognized columns.
func missingRecognized(d *tabular.Dataset) int {
	var columns []string
	for _, column := range d.Columns() {
		if tabular.IsRecognized(column) {
			columns = append(columns, column)
		}
	}
	return len(d.MissingCells(columns))
}
