package dataset

import (
	"fmt"
	"strings"
)

// Row is one record of a table. Values are positional and follow the
// table schema; a nil value is a database NULL.
type Row struct {
	values []any
}

// Value returns the value at column position i.
func (r Row) Value(i int) any {
	return r.values[i]
}

// Values returns a copy of the row values in schema order.
func (r Row) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// Table is a normalized, schema-validated row collection destined for one
// relational table.
type Table struct {
	Name   string
	Schema *Schema
	Rows   []Row
}

// NewTable creates an empty table with the given schema.
func NewTable(name string, schema *Schema) *Table {
	return &Table{Name: name, Schema: schema}
}

// Append validates values against the schema and adds them as a new row.
// Rows with the wrong width or a value that does not match its column kind
// are rejected.
func (t *Table) Append(values []any) error {
	if len(values) != t.Schema.Len() {
		return fmt.Errorf("table %s: row has %d values, schema has %d columns", t.Name, len(values), t.Schema.Len())
	}
	for i, v := range values {
		col := t.Schema.Column(i)
		if !col.Kind.conforms(v) {
			return fmt.Errorf("table %s: column %s expects %s, got %T", t.Name, col.Name, col.Kind, v)
		}
	}
	row := Row{values: make([]any, len(values))}
	copy(row.values, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Get returns the named column's value for row r.
func (t *Table) Get(r Row, column string) (any, bool) {
	i, ok := t.Schema.Index(column)
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// ID returns the trimmed identifier of row r read from idColumn.
// ok is false when the column is missing or the value is null or blank.
func (t *Table) ID(r Row, idColumn string) (string, bool) {
	v, ok := t.Get(r, idColumn)
	if !ok || v == nil {
		return "", false
	}
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// WithColumn returns a copy of the table with an extra column whose value is
// def on every row. If the column already exists the table is returned as is.
func (t *Table) WithColumn(col Column, def any) (*Table, error) {
	if t.Schema.Has(col.Name) {
		return t, nil
	}
	if !col.Kind.conforms(def) {
		return nil, fmt.Errorf("table %s: default for %s does not match %s", t.Name, col.Name, col.Kind)
	}
	schema, err := NewSchema(append(t.Schema.Columns(), col))
	if err != nil {
		return nil, err
	}
	out := &Table{Name: t.Name, Schema: schema, Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		values := make([]any, 0, len(r.values)+1)
		values = append(values, r.values...)
		out.Rows[i] = Row{values: append(values, def)}
	}
	return out, nil
}

// Records converts every row into a column-name keyed map, the shape GORM
// expects for map based inserts.
func (t *Table) Records() []map[string]any {
	names := t.Schema.Names()
	out := make([]map[string]any, len(t.Rows))
	for i, r := range t.Rows {
		rec := make(map[string]any, len(names))
		for j, name := range names {
			rec[name] = r.values[j]
		}
		out[i] = rec
	}
	return out
}
