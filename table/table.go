// Package table provides the small column-typed table used by tidydraws:
// named, typed columns with optional grouping metadata, plus the join and
// column-ordering primitives the draw assembly needs. It is not a general
// dataframe; it supports exactly what long-format draw tables require.
package table

import (
	"fmt"
)

// ColumnType identifies the storage type of a Column.
type ColumnType int

const (
	Int ColumnType = iota
	Float
	String
	Factor
	NullableInt
)

func (t ColumnType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Factor:
		return "factor"
	case NullableInt:
		return "nullable_int"
	}
	return "unknown"
}

// Column is a single named, typed column. Exactly one of the value slices is
// populated, selected by Type. Factor columns keep their level set alongside
// the string values; NullableInt columns carry a validity mask where
// Valid[i] == false marks a missing value.
type Column struct {
	Name    string
	Type    ColumnType
	Ints    []int
	Floats  []float64
	Strings []string
	Levels  []string
	Valid   []bool
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	switch c.Type {
	case Int, NullableInt:
		return len(c.Ints)
	case Float:
		return len(c.Floats)
	case String, Factor:
		return len(c.Strings)
	}
	return 0
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	out := &Column{Name: c.Name, Type: c.Type}
	if c.Ints != nil {
		out.Ints = append([]int(nil), c.Ints...)
	}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Levels != nil {
		out.Levels = append([]string(nil), c.Levels...)
	}
	if c.Valid != nil {
		out.Valid = append([]bool(nil), c.Valid...)
	}
	return out
}

// appendFrom appends row i of src onto c. Both columns must share a type.
func (c *Column) appendFrom(src *Column, i int) {
	switch src.Type {
	case Int:
		c.Ints = append(c.Ints, src.Ints[i])
	case Float:
		c.Floats = append(c.Floats, src.Floats[i])
	case String, Factor:
		c.Strings = append(c.Strings, src.Strings[i])
	case NullableInt:
		c.Ints = append(c.Ints, src.Ints[i])
		c.Valid = append(c.Valid, src.Valid[i])
	}
}

// emptyLike returns an empty column with src's name, type and levels.
func emptyLike(src *Column) *Column {
	out := &Column{Name: src.Name, Type: src.Type}
	if src.Levels != nil {
		out.Levels = append([]string(nil), src.Levels...)
	}
	return out
}

// Table is an ordered collection of equal-length columns with optional
// grouping metadata. Grouping does not change storage; it records which
// columns downstream aggregation should group over.
type Table struct {
	cols   []*Column
	groups []string
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// NRows returns the number of rows (0 for an empty table).
func (t *Table) NRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NCols returns the number of columns.
func (t *Table) NCols() int {
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order. The slice is the table's own;
// callers must treat it as read-only.
func (t *Table) Columns() []*Column {
	return t.cols
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for _, c := range t.cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// AddColumn appends a column. The column's length must match the table's
// current row count (any length is accepted for the first column).
func (t *Table) AddColumn(c *Column) error {
	if t.HasColumn(c.Name) {
		return fmt.Errorf("table: duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.NRows() {
		return fmt.Errorf("table: column %q has %d values, table has %d rows", c.Name, c.Len(), t.NRows())
	}
	t.cols = append(t.cols, c)
	return nil
}

// AddInts appends an integer column.
func (t *Table) AddInts(name string, values []int) error {
	return t.AddColumn(&Column{Name: name, Type: Int, Ints: values})
}

// AddFloats appends a float column.
func (t *Table) AddFloats(name string, values []float64) error {
	return t.AddColumn(&Column{Name: name, Type: Float, Floats: values})
}

// AddStrings appends a string column.
func (t *Table) AddStrings(name string, values []string) error {
	return t.AddColumn(&Column{Name: name, Type: String, Strings: values})
}

// AddFactor appends a factor column with an explicit level set. Levels may be
// nil, in which case the distinct values in first-appearance order become the
// levels.
func (t *Table) AddFactor(name string, values []string, levels []string) error {
	if levels == nil {
		seen := make(map[string]bool)
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
	}
	return t.AddColumn(&Column{Name: name, Type: Factor, Strings: values, Levels: levels})
}

// AddNullableInts appends a nullable integer column; valid[i] == false marks
// value i as missing.
func (t *Table) AddNullableInts(name string, values []int, valid []bool) error {
	if len(values) != len(valid) {
		return fmt.Errorf("table: column %q has %d values but %d validity flags", name, len(values), len(valid))
	}
	return t.AddColumn(&Column{Name: name, Type: NullableInt, Ints: values, Valid: valid})
}

// Clone returns a deep copy of the table, grouping included.
func (t *Table) Clone() *Table {
	out := &Table{}
	for _, c := range t.cols {
		out.cols = append(out.cols, c.Clone())
	}
	if t.groups != nil {
		out.groups = append([]string(nil), t.groups...)
	}
	return out
}

// GroupBy replaces the table's grouping with the named columns. All names
// must exist.
func (t *Table) GroupBy(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return fmt.Errorf("table: cannot group by unknown column %q", n)
		}
	}
	t.groups = append([]string(nil), names...)
	return nil
}

// Groups returns the current grouping columns (nil when ungrouped).
func (t *Table) Groups() []string {
	if t.groups == nil {
		return nil
	}
	return append([]string(nil), t.groups...)
}

// Ungroup clears the grouping metadata.
func (t *Table) Ungroup() {
	t.groups = nil
}

// MoveLast moves the named column to the final position. Unknown names are
// ignored.
func (t *Table) MoveLast(name string) {
	for i, c := range t.cols {
		if c.Name == name {
			t.cols = append(append(t.cols[:i:i], t.cols[i+1:]...), c)
			return
		}
	}
}
