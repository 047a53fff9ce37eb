package detect

import (
	"github.com/agentstation/scrub/pkg/tabular"
)

// Kind classifies a detection finding.
type Kind string

const (
	// KindMissing indicates a cell with no value after trimming.
	KindMissing Kind = "missing"
	// KindMalformed indicates a value that fails its column's shape rule.
	KindMalformed Kind = "malformed"
	// KindNonCanonical indicates a value outside its canonical reference set.
	KindNonCanonical Kind = "non-canonical"
	// KindImplausible indicates a parseable value outside its plausible range.
	KindImplausible Kind = "implausible"
)

// Issue is one finding against a single cell. Suggestion carries the
// canonical replacement when a fuzzy match cleared the set's threshold;
// an empty Suggestion means nothing plausible matched and the value is
// left for enrichment or manual review rather than guessed.
type Issue struct {
	Column     string
	Kind       Kind
	Value      string
	Suggestion string
}

// Finding pairs a row with one of its issues for flat, renderable
// views of a report.
type Finding struct {
	Row   tabular.RowID
	Issue Issue
}

// Report holds every finding of one detection pass: per-row issues
// plus the duplicate rows, both in dataset order. An empty report is
// the convergence signal.
type Report struct {
	issues     map[tabular.RowID][]Issue
	rowOrder   []tabular.RowID
	duplicates []tabular.RowID
	dupSet     map[tabular.RowID]bool
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{
		issues: make(map[tabular.RowID][]Issue),
		dupSet: make(map[tabular.RowID]bool),
	}
}

// Add records an issue against a row.
func (r *Report) Add(id tabular.RowID, issue Issue) {
	if _, seen := r.issues[id]; !seen {
		r.rowOrder = append(r.rowOrder, id)
	}
	r.issues[id] = append(r.issues[id], issue)
}

// AddDuplicate flags a row as a later occurrence of an earlier row.
func (r *Report) AddDuplicate(id tabular.RowID) {
	if r.dupSet[id] {
		return
	}
	r.dupSet[id] = true
	r.duplicates = append(r.duplicates, id)
}

// Empty reports whether the pass found nothing: no cell issues and no
// duplicates.
func (r *Report) Empty() bool {
	return len(r.issues) == 0 && len(r.duplicates) == 0
}

// Rows returns the rows with cell issues, in dataset order.
func (r *Report) Rows() []tabular.RowID {
	out := make([]tabular.RowID, len(r.rowOrder))
	copy(out, r.rowOrder)
	return out
}

// Issues returns the issues recorded against a row.
func (r *Report) Issues(id tabular.RowID) []Issue {
	issues := r.issues[id]
	out := make([]Issue, len(issues))
	copy(out, issues)
	return out
}

// Duplicates returns the duplicate rows in dataset order. The first
// occurrence of each group is canonical and never listed.
func (r *Report) Duplicates() []tabular.RowID {
	out := make([]tabular.RowID, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// IsDuplicate reports whether a row was flagged as a duplicate.
func (r *Report) IsDuplicate(id tabular.RowID) bool {
	return r.dupSet[id]
}

// IssueCount returns the number of cell issues across all rows.
func (r *Report) IssueCount() int {
	n := 0
	for _, issues := range r.issues {
		n += len(issues)
	}
	return n
}

// Findings returns every cell issue paired with its row, in dataset
// order.
func (r *Report) Findings() []Finding {
	var out []Finding
	for _, id := range r.rowOrder {
		for _, issue := range r.issues[id] {
			out = append(out, Finding{Row: id, Issue: issue})
		}
	}
	return out
}

// ByColumn groups findings by column for rendering. Order within a
// column follows dataset order.
func (r *Report) ByColumn() map[string][]Finding {
	groups := make(map[string][]Finding)
	for _, f := range r.Findings() {
		groups[f.Issue.Column] = append(groups[f.Issue.Column], f)
	}
	return groups
}

// CountByKind returns the issue count per finding kind.
func (r *Report) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range r.Findings() {
		counts[f.Issue.Kind]++
	}
	return counts
}
