// Package enrich fills the gaps correction could not close. The engine
// calls an external fill capability once per missing cell and derives
// computed columns from the completed rows. Fill failures degrade to
// "left missing" at the single-field level and never abort a pass.
package enrich

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/errors"
	"github.com/agentstation/scrub/pkg/logging"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Filler is the external fill capability: given the row's known fields,
// produce a plausible value for the target column. Implementations are
// fallible and possibly slow; callers bound each call with a timeout
// and treat unavailability the same as per-call failure.
type Filler interface {
	// Name identifies the filler in logs and change attribution.
	Name() string

	// Fill returns a value for the target column given the row's
	// non-missing fields, or an error when it cannot.
	Fill(ctx context.Context, rowContext map[string]string, targetColumn string) (string, error)
}

// Engine fills residual missing cells and derives computed columns.
type Engine struct {
	filler  Filler
	timeout time.Duration
}

// Option configures an enrichment engine.
type Option func(*Engine)

// WithFiller sets the external fill capability. An engine without a
// filler skips fills and only derives columns.
func WithFiller(filler Filler) Option {
	return func(e *Engine) {
		e.filler = filler
	}
}

// WithTimeout overrides the per-field fill timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// New creates an enrichment engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		timeout: constants.DefaultFillTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns a copy of the dataset with missing recognized cells
// filled where the external capability succeeded, plus derived columns
// computed from the completed rows. Each successful fill is one
// "enriched" record and each derived cell that was created or changed
// is one "derived" record; failed fills leave the cell missing and
// emit nothing. The input dataset is never mutated.
func (e *Engine) Enrich(ctx context.Context, d *tabular.Dataset) (*tabular.Dataset, []changelog.Record) {
	out := d.Clone()
	var records []changelog.Record

	if e.filler != nil {
		records = append(records, e.fillMissing(ctx, out)...)
	}
	records = append(records, deriveColumns(out)...)

	logging.FromContext(ctx).Debug().
		Int("changes", len(records)).
		Msg("enrichment pass complete")

	return out, records
}

// fillMissing calls the filler once per missing recognized cell. A
// field's failure only skips that field.
func (e *Engine) fillMissing(ctx context.Context, d *tabular.Dataset) []changelog.Record {
	var columns []string
	for _, column := range d.Columns() {
		if tabular.IsRecognized(column) {
			columns = append(columns, column)
		}
	}

	var records []changelog.Record
	for _, ref := range d.MissingCells(columns) {
		row, ok := d.Row(ref.Row)
		if !ok {
			continue
		}

		value, err := e.fill(ctx, row, columns, ref.Column)
		if err != nil {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("filler", e.filler.Name()).
				Str("row", ref.Row.String()).
				Str("column", ref.Column).
				Msg("fill failed, leaving cell missing")
			continue
		}

		filled := tabular.Parse(value)
		if filled.IsMissing() {
			continue
		}
		row.Set(ref.Column, filled)
		records = append(records, changelog.Record{
			Row:    ref.Row,
			Column: ref.Column,
			New:    filled.String(),
			Action: changelog.ActionEnriched,
		})
	}
	return records
}

// fill runs one bounded filler call and validates the result.
func (e *Engine) fill(ctx context.Context, row *tabular.Row, columns []string, target string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	value, err := e.filler.Fill(callCtx, rowContext(row, columns, target), target)
	if err != nil {
		return "", err
	}
	return validateFill(value)
}

// rowContext collects the row's non-missing recognized fields, keyed by
// canonical column name, excluding the target itself.
func rowContext(row *tabular.Row, columns []string, target string) map[string]string {
	fields := make(map[string]string, len(columns))
	for _, column := range columns {
		if column == target {
			continue
		}
		v := row.Get(column)
		if v.IsMissing() {
			continue
		}
		canonical, ok := tabular.Canonical(column)
		if !ok {
			canonical = column
		}
		fields[canonical] = v.String()
	}
	return fields
}

// validateFill rejects values that cannot stand in a single cell:
// empty, multi-line, or implausibly long responses.
func validateFill(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, "\r\n") || len(value) > constants.MaxFillValueLength {
		return "", errors.ErrNoFill
	}
	return value, nil
}

// ContextKeys returns a row context's field names in sorted order, for
// deterministic prompt construction by fillers.
func ContextKeys(rowContext map[string]string) []string {
	keys := make([]string, 0, len(rowContext))
	for key := range rowContext {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
