package tabular

import (
	"errors"
	"fmt"
)

// Value is one table cell. Survey files distinguish a genuinely absent answer
// from an empty string, and downstream recoding relies on that distinction:
// recoded narrative fragments degrade to the empty string, while missing
// cells stay missing.
type Value struct {
	Str     string
	Missing bool
}

// NA is the missing cell.
var NA = Value{Missing: true}

// Cell wraps a present string value.
func Cell(s string) Value {
	return Value{Str: s}
}

// Table is a small in-memory table with named, ordered columns. Survey
// samples are at most tens of thousands of rows, so everything stays
// resident; there is no streaming path.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// MissingColumnError reports a requested column that the table does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not present in table", e.Column)
}

// New creates an empty table with the given column order.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("New: no columns")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("New: empty column name at position %d", i)
		}
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("New: duplicate column %q", c)
		}
		index[c] = i
	}
	return &Table{
		cols:  append([]string(nil), columns...),
		index: index,
	}, nil
}

// Columns returns the column names in order. The caller must not mutate the
// returned slice.
func (t *Table) Columns() []string {
	return t.cols
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds one row. The row must have exactly one cell per column.
func (t *Table) AppendRow(cells []Value) error {
	if len(cells) != len(t.cols) {
		return fmt.Errorf("AppendRow: row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	t.rows = append(t.rows, append([]Value(nil), cells...))
	return nil
}

// Get returns the cell at (row, column). The second return is false when the
// column does not exist or the row index is out of range.
func (t *Table) Get(row int, column string) (Value, bool) {
	ci, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[row][ci], true
}

// Set overwrites the cell at (row, column).
func (t *Table) Set(row int, column string, v Value) error {
	ci, ok := t.index[column]
	if !ok {
		return &MissingColumnError{Column: column}
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("Set: row %d out of range (rows=%d)", row, len(t.rows))
	}
	t.rows[row][ci] = v
	return nil
}

// AddColumn appends a new column filled with fill. It fails if the column
// already exists.
func (t *Table) AddColumn(name string, fill Value) error {
	if name == "" {
		return errors.New("AddColumn: empty column name")
	}
	if _, ok := t.index[name]; ok {
		return fmt.Errorf("AddColumn: column %q already exists", name)
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
	return nil
}

// Project returns a new table with exactly the requested columns, in the
// requested order, copying the cell data. A column the table does not have
// yields a MissingColumnError.
func (t *Table) Project(columns []string) (*Table, error) {
	out, err := New(columns)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	idx := make([]int, len(columns))
	for i, c := range columns {
		ci, ok := t.index[c]
		if !ok {
			return nil, &MissingColumnError{Column: c}
		}
		idx[i] = ci
	}
	for _, row := range t.rows {
		cells := make([]Value, len(columns))
		for i, ci := range idx {
			cells[i] = row[ci]
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

// ReplaceAll applies a string transform to every present cell in the table,
// column-independent. Missing cells are left untouched.
func (t *Table) ReplaceAll(fn func(string) string) {
	for _, row := range t.rows {
		for i := range row {
			if row[i].Missing {
				continue
			}
			row[i].Str = fn(row[i].Str)
		}
	}
}
