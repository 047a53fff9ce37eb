package changelog

import (
	"fmt"
	"os"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/errors"
)

// Render formats the log as human-readable text: one section per pass,
// one block per action kind inside it, grouped by column, one line per
// record. Passes without records render as "no changes".
func (l *Log) Render() string {
	var b strings.Builder

	for _, pass := range l.Passes() {
		fmt.Fprintf(&b, "pass %d\n", pass.Number)
		if len(pass.Records) == 0 {
			b.WriteString("  no changes\n")
			continue
		}

		byAction := GroupByAction(pass.Records)
		for _, action := range Actions() {
			records := byAction[action]
			if len(records) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s (%d)\n", action, len(records))
			renderActionBlock(&b, action, records)
		}
	}
	return b.String()
}

// renderActionBlock writes one action's records grouped by column.
// Whole-row records (no column) render directly under the action.
func renderActionBlock(b *strings.Builder, action Action, records []Record) {
	byColumn := GroupByColumn(records)
	for _, column := range Columns(records) {
		indent := "    "
		if column != "" {
			fmt.Fprintf(b, "    %s\n", column)
			indent = "      "
		}
		for _, r := range byColumn[column] {
			b.WriteString(indent)
			b.WriteString(renderLine(action, r))
			b.WriteByte('\n')
		}
	}
}

// renderLine formats a single record. Corrections show both values,
// fills and derivations show the new value alone, removals show the
// dropped row snapshot.
func renderLine(action Action, r Record) string {
	switch action {
	case ActionCorrected:
		return fmt.Sprintf("row %s: %q → %q", r.Row, r.Old, r.New)
	case ActionDeduplicated:
		return fmt.Sprintf("row %s: dropped %q", r.Row, r.Old)
	default:
		return fmt.Sprintf("row %s: %q", r.Row, r.New)
	}
}

// WriteFile appends the rendered log to path under a timestamped run
// header, creating the file if needed. Earlier runs are never
// rewritten.
func (l *Log) WriteFile(path string, start utc.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", start.Format(constants.TimeFormatRunHeader))
	b.WriteString(l.Render())
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
