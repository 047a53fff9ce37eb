package tabular

import (
	"fmt"
	"strings"
)

// Dataset is an ordered table: a column schema plus rows in input
// order. The schema is stable across repair passes; enrichment may
// append derived columns but nothing reorders or renames the columns
// that arrived in the input.
type Dataset struct {
	columns []string
	rows    []*Row
	index   map[RowID]*Row
}

// CellRef addresses a single cell by row identifier and column name.
type CellRef struct {
	Row    RowID
	Column string
}

// NewDataset returns an empty dataset with the given column order.
func NewDataset(columns ...string) *Dataset {
	d := &Dataset{
		columns: make([]string, len(columns)),
		index:   make(map[RowID]*Row),
	}
	copy(d.columns, columns)
	return d
}

// Columns returns the column names in schema order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the schema contains the column.
func (d *Dataset) HasColumn(name string) bool {
	for _, column := range d.columns {
		if column == name {
			return true
		}
	}
	return false
}

// ResolveColumn returns the schema's header for a canonical semantic
// column name, matched case-insensitively. The second return is false
// when the dataset has no such column.
func (d *Dataset) ResolveColumn(canonical string) (string, bool) {
	for _, column := range d.columns {
		if strings.EqualFold(strings.TrimSpace(column), canonical) {
			return column, true
		}
	}
	return "", false
}

// AddColumn appends a column to the schema. Existing rows read as
// missing in the new column until a value is set.
func (d *Dataset) AddColumn(name string) error {
	for _, column := range d.columns {
		if strings.EqualFold(column, name) {
			return fmt.Errorf("column %s already exists", name)
		}
	}
	d.columns = append(d.columns, name)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the rows in order. The returned slice is a copy but the
// rows are shared; mutate a clone, not the original.
func (d *Dataset) Rows() []*Row {
	out := make([]*Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Row returns a row by identifier and whether it exists.
func (d *Dataset) Row(id RowID) (*Row, bool) {
	row, ok := d.index[id]
	return row, ok
}

// Append adds a row to the end of the dataset. Returns an error if the
// row is nil or its identifier is already present.
func (d *Dataset) Append(row *Row) error {
	if row == nil {
		return fmt.Errorf("row cannot be nil")
	}
	if _, exists := d.index[row.ID()]; exists {
		return fmt.Errorf("row with ID %s already exists", row.ID())
	}
	if d.index == nil {
		d.index = make(map[RowID]*Row)
	}
	d.rows = append(d.rows, row)
	d.index[row.ID()] = row
	return nil
}

// RemoveRows drops the rows with the given identifiers, preserving the
// order of the rows that remain. Returns the number removed.
func (d *Dataset) RemoveRows(ids ...RowID) int {
	drop := make(map[RowID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := d.rows[:0]
	removed := 0
	for _, row := range d.rows {
		if drop[row.ID()] {
			delete(d.index, row.ID())
			removed++
			continue
		}
		kept = append(kept, row)
	}
	d.rows = kept
	return removed
}

// Clone returns a deep copy of the dataset. Row identifiers are
// preserved so findings and change records carry across versions.
func (d *Dataset) Clone() *Dataset {
	clone := NewDataset(d.columns...)
	for _, row := range d.rows {
		cloned := row.Clone()
		clone.rows = append(clone.rows, cloned)
		clone.index[cloned.ID()] = cloned
	}
	return clone
}

// MissingCells returns references to every missing cell in the given
// columns, in row order and then column order.
func (d *Dataset) MissingCells(columns []string) []CellRef {
	var refs []CellRef
	for _, row := range d.rows {
		for _, column := range columns {
			if row.Get(column).IsMissing() {
				refs = append(refs, CellRef{Row: row.ID(), Column: column})
			}
		}
	}
	return refs
}
