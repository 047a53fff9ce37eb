// Package changelog collects change records as repair passes mutate a
// dataset and renders them as a human-readable, append-only log. Every
// mutation anywhere in the pipeline is exactly one record here.
package changelog

import (
	"sort"
	"sync"

	"github.com/agentstation/scrub/pkg/tabular"
)

// Action represents the kind of mutation a record describes.
type Action string

const (
	// ActionCorrected indicates a flagged cell was repaired in place.
	ActionCorrected Action = "corrected"
	// ActionDeduplicated indicates a duplicate row was removed.
	ActionDeduplicated Action = "deduplicated"
	// ActionEnriched indicates a missing cell was filled externally.
	ActionEnriched Action = "enriched"
	// ActionDerived indicates a computed column value was added.
	ActionDerived Action = "derived"
)

// Actions returns the action kinds in rendering order.
func Actions() []Action {
	return []Action{ActionCorrected, ActionDeduplicated, ActionEnriched, ActionDerived}
}

// Record describes one mutation. Records are independently meaningful:
// each carries the row, column, old and new values needed to inspect
// the change without replaying the run.
type Record struct {
	Row    tabular.RowID // Row the mutation applied to
	Column string        // Column mutated; empty for whole-row removals
	Old    string        // Value before the mutation; empty when none existed
	New    string        // Value after the mutation; empty for removals
	Action Action        // Kind of mutation
}

// Pass groups the records of one repair pass.
type Pass struct {
	Number  int
	Records []Record
}

// Log is an append-only collector of change records with pass
// boundaries. Appends are guarded by a mutex so grouped ordering stays
// stable if writers ever overlap.
type Log struct {
	mu     sync.Mutex
	passes []*Pass
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// BeginPass opens a new pass section. Records appended afterwards
// belong to it.
func (l *Log) BeginPass(number int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.passes = append(l.passes, &Pass{Number: number})
}

// Append adds records to the current pass. A log that has not begun a
// pass opens pass 1 implicitly.
func (l *Log) Append(records ...Record) {
	if len(records) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.passes) == 0 {
		l.passes = append(l.passes, &Pass{Number: 1})
	}
	current := l.passes[len(l.passes)-1]
	current.Records = append(current.Records, records...)
}

// Passes returns a copy of the pass sections in order. Passes with no
// records are included so quiet passes remain visible.
func (l *Log) Passes() []Pass {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Pass, len(l.passes))
	for i, p := range l.passes {
		records := make([]Record, len(p.Records))
		copy(records, p.Records)
		out[i] = Pass{Number: p.Number, Records: records}
	}
	return out
}

// Records returns every record across all passes in append order.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Record
	for _, p := range l.passes {
		out = append(out, p.Records...)
	}
	return out
}

// Len returns the total number of records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, p := range l.passes {
		n += len(p.Records)
	}
	return n
}

// Empty reports whether the log holds no records.
func (l *Log) Empty() bool {
	return l.Len() == 0
}

// Summary returns the record count per action kind.
func (l *Log) Summary() map[Action]int {
	counts := make(map[Action]int)
	for _, r := range l.Records() {
		counts[r.Action]++
	}
	return counts
}

// GroupByAction splits records by action kind, preserving order within
// each group.
func GroupByAction(records []Record) map[Action][]Record {
	groups := make(map[Action][]Record)
	for _, r := range records {
		groups[r.Action] = append(groups[r.Action], r)
	}
	return groups
}

// GroupByColumn splits records by column, preserving order within each
// group.
func GroupByColumn(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Column] = append(groups[r.Column], r)
	}
	return groups
}

// Columns returns the distinct columns of records in sorted order.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, r := range records {
		if !seen[r.Column] {
			seen[r.Column] = true
			columns = append(columns, r.Column)
		}
	}
	sort.Strings(columns)
	return columns
}
