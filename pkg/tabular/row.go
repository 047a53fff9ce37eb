package tabular

import (
	"strings"

	"github.com/google/uuid"
)

// RowID is a stable synthetic identifier for a row. IDs are assigned
// once when a dataset is built and survive every repair pass until the
// row is removed, so findings and change records never reference a row
// by position.
type RowID string

// NewRowID returns a fresh random row identifier.
func NewRowID() RowID {
	return RowID(uuid.NewString())
}

// String returns the identifier as a string.
func (id RowID) String() string {
	return string(id)
}

// Row is a single record: a stable identifier plus cells keyed by
// column name.
type Row struct {
	id    RowID
	cells map[string]Value
}

// NewRow returns an empty row with a fresh identifier.
func NewRow() *Row {
	return &Row{
		id:    NewRowID(),
		cells: make(map[string]Value),
	}
}

// NewRowWithID returns an empty row with the given identifier.
func NewRowWithID(id RowID) *Row {
	return &Row{
		id:    id,
		cells: make(map[string]Value),
	}
}

// ID returns the row's stable identifier.
func (r *Row) ID() RowID {
	return r.id
}

// Get returns the cell value for a column. Columns the row has never
// seen read as missing.
func (r *Row) Get(column string) Value {
	return r.cells[column]
}

// Set stores a cell value for a column.
func (r *Row) Set(column string, v Value) {
	r.cells[column] = v
}

// Clone returns a deep copy of the row sharing the same identifier.
func (r *Row) Clone() *Row {
	clone := &Row{
		id:    r.id,
		cells: make(map[string]Value, len(r.cells)),
	}
	for column, v := range r.cells {
		clone.cells[column] = v
	}
	return clone
}

// Fingerprint joins the row's normalized cell values in the given
// column order. Rows with equal fingerprints are duplicates regardless
// of case or stray whitespace.
func (r *Row) Fingerprint(columns []string) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = r.Get(column).Norm()
	}
	return strings.Join(parts, "\x1f")
}
