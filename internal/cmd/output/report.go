package output

import (
	"sort"
	"strconv"
	"time"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/pipeline"
)

// FindingRow is the serializable shape of one detection finding.
type FindingRow struct {
	Column     string `json:"column"`
	Kind       string `json:"kind"`
	Row        string `json:"row"`
	Value      string `json:"value"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ReportData renders a detection report, grouped by column for review.
func ReportData(report *detect.Report) Data {
	data := Data{Headers: []string{"Column", "Kind", "Row", "Value", "Suggestion"}}
	for _, f := range ReportRows(report) {
		data.Rows = append(data.Rows, []string{f.Column, f.Kind, f.Row, f.Value, f.Suggestion})
	}
	for _, id := range report.Duplicates() {
		data.Rows = append(data.Rows, []string{"", "duplicate", id.String(), "", ""})
	}
	return data
}

// ReportRows flattens a report into findings grouped by column.
func ReportRows(report *detect.Report) []FindingRow {
	byColumn := report.ByColumn()
	columns := make([]string, 0, len(byColumn))
	for column := range byColumn {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var rows []FindingRow
	for _, column := range columns {
		for _, f := range byColumn[column] {
			rows = append(rows, FindingRow{
				Column:     f.Issue.Column,
				Kind:       string(f.Issue.Kind),
				Row:        f.Row.String(),
				Value:      f.Issue.Value,
				Suggestion: f.Issue.Suggestion,
			})
		}
	}
	return rows
}

// Summary is the serializable shape of a repair run's outcome.
type Summary struct {
	Converged    bool   `json:"converged"`
	Iterations   int    `json:"iterations"`
	RowsIn       int    `json:"rows_in"`
	RowsOut      int    `json:"rows_out"`
	Corrected    int    `json:"corrected"`
	Deduplicated int    `json:"deduplicated"`
	Enriched     int    `json:"enriched"`
	Derived      int    `json:"derived"`
	Remaining    int    `json:"remaining_issues"`
	Duration     string `json:"duration"`
}

// NewSummary builds a Summary from a pipeline result.
func NewSummary(result *pipeline.Result) Summary {
	changes := result.Metadata.Changes
	return Summary{
		Converged:    result.Converged,
		Iterations:   result.Iterations,
		RowsIn:       result.Metadata.RowsIn,
		RowsOut:      result.Metadata.RowsOut,
		Corrected:    changes[changelog.ActionCorrected],
		Deduplicated: changes[changelog.ActionDeduplicated],
		Enriched:     changes[changelog.ActionEnriched],
		Derived:      changes[changelog.ActionDerived],
		Remaining:    result.RemainingIssues() + result.RemainingDuplicates(),
		Duration:     result.Metadata.Duration.Round(time.Millisecond).String(),
	}
}

// SummaryData renders a run summary as a key-value table.
func SummaryData(s Summary) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Converged", strconv.FormatBool(s.Converged)},
			{"Iterations", strconv.Itoa(s.Iterations)},
			{"Rows in", strconv.Itoa(s.RowsIn)},
			{"Rows out", strconv.Itoa(s.RowsOut)},
			{"Corrected", strconv.Itoa(s.Corrected)},
			{"Deduplicated", strconv.Itoa(s.Deduplicated)},
			{"Enriched", strconv.Itoa(s.Enriched)},
			{"Derived", strconv.Itoa(s.Derived)},
			{"Remaining issues", strconv.Itoa(s.Remaining)},
			{"Duration", s.Duration},
		},
	}
}
