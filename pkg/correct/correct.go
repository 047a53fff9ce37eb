// Package correct applies deterministic repairs to the cells a
// detection pass flagged. Rows without an issue entry are never
// touched, every mutation emits exactly one change record, and issues
// with no safe deterministic fix are left for enrichment or the next
// pass rather than guessed at.
package correct

import (
	"strings"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/logging"
	"github.com/agentstation/scrub/pkg/refdata"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Engine repairs flagged cells and drops duplicate rows.
type Engine struct {
	genders         *refdata.Set
	maritalStatuses *refdata.Set
}

// Option configures a correction engine.
type Option func(*Engine)

// WithGenders overrides the gender vocabulary.
func WithGenders(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.genders = set
		}
	}
}

// WithMaritalStatuses overrides the marital-status vocabulary.
func WithMaritalStatuses(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.maritalStatuses = set
		}
	}
}

// New creates a correction engine with the embedded vocabularies.
func New(opts ...Option) *Engine {
	e := &Engine{
		genders:         refdata.Genders(),
		maritalStatuses: refdata.MaritalStatuses(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Correct returns a repaired copy of the dataset plus one change
// record per mutation. Duplicate rows are dropped first, keeping each
// group's first occurrence; then every flagged cell that has a
// deterministic fix is repaired in dataset column order. The input
// dataset is never mutated.
func (e *Engine) Correct(d *tabular.Dataset, report *detect.Report) (*tabular.Dataset, []changelog.Record) {
	out := d.Clone()
	columns := out.Columns()
	var records []changelog.Record

	duplicates := report.Duplicates()
	for _, id := range duplicates {
		row, ok := out.Row(id)
		if !ok {
			continue
		}
		records = append(records, changelog.Record{
			Row:    id,
			Old:    snapshot(columns, row),
			Action: changelog.ActionDeduplicated,
		})
	}
	out.RemoveRows(duplicates...)

	for _, id := range report.Rows() {
		row, ok := out.Row(id)
		if !ok {
			continue // dropped as a duplicate
		}

		byColumn := issuesByColumn(report.Issues(id))
		for _, column := range columns {
			issues := byColumn[column]
			if len(issues) == 0 {
				continue
			}
			if record, ok := e.repairCell(row, column, issues); ok {
				records = append(records, record)
			}
		}
	}

	logging.Debug().
		Int("mutations", len(records)).
		Int("duplicates_dropped", len(duplicates)).
		Msg("correction pass complete")

	return out, records
}

// repairCell applies at most one repair to a flagged cell. The second
// return is false when the cell has no deterministic fix, which leaves
// the issue visible to the next detection pass.
func (e *Engine) repairCell(row *tabular.Row, column string, issues []detect.Issue) (changelog.Record, bool) {
	canonical, ok := tabular.Canonical(column)
	if !ok {
		return changelog.Record{}, false
	}

	old := row.Get(column)
	if old.IsMissing() {
		// Missing cells are enrichment's responsibility.
		return changelog.Record{}, false
	}

	repaired, ok := e.repairValue(canonical, old, issues)
	if !ok || repaired.Equal(old) {
		return changelog.Record{}, false
	}

	row.Set(column, repaired)
	return changelog.Record{
		Row:    row.ID(),
		Column: column,
		Old:    old.String(),
		New:    repaired.String(),
		Action: changelog.ActionCorrected,
	}, true
}

// repairValue picks the policy for one flagged value.
func (e *Engine) repairValue(canonical string, old tabular.Value, issues []detect.Issue) (tabular.Value, bool) {
	switch canonical {
	case tabular.ColumnFirstName, tabular.ColumnLastName, tabular.ColumnFullName:
		return tabular.String(tabular.TitleCase(old.String())), true

	case tabular.ColumnEmail:
		// No deterministic repair exists for a malformed address.
		// Clearing it hands the field to enrichment; the record keeps
		// the old value visible.
		return tabular.Missing(), true

	case tabular.ColumnPhone:
		return tabular.String(formatPhone(old.String())), true

	case tabular.ColumnGender:
		return normalizeVocabulary(old.String(), e.genders, constants.GenderFallback), true

	case tabular.ColumnMaritalStatus:
		return normalizeVocabulary(old.String(), e.maritalStatuses, constants.MaritalStatusFallback), true

	case tabular.ColumnAge:
		// Implausible or unparseable ages are nulled out, never
		// replaced with a guessed substitute.
		return tabular.Missing(), true

	case tabular.ColumnLoyaltyPoints:
		return repairLoyaltyPoints(issues)

	case tabular.ColumnCountry, tabular.ColumnCity:
		return applySuggestion(issues)
	}
	return tabular.Value{}, false
}

// issuesByColumn indexes a row's issues by the column they flag.
func issuesByColumn(issues []detect.Issue) map[string][]detect.Issue {
	byColumn := make(map[string][]detect.Issue, len(issues))
	for _, issue := range issues {
		byColumn[issue.Column] = append(byColumn[issue.Column], issue)
	}
	return byColumn
}

// snapshot renders a row's non-missing cells in column order, the old
// value recorded for a dropped duplicate.
func snapshot(columns []string, row *tabular.Row) string {
	var parts []string
	for _, column := range columns {
		v := row.Get(column)
		if v.IsMissing() {
			continue
		}
		parts = append(parts, column+"="+v.String())
	}
	return strings.Join(parts, ", ")
}
