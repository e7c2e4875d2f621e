package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the declared type of a column.
type Kind int

const (
	// KindString holds text values.
	KindString Kind = iota
	// KindDate holds calendar dates as time.Time at UTC midnight.
	KindDate
	// KindBool holds boolean flags.
	KindBool
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Column is a named, typed column of a table.
type Column struct {
	Name string
	Kind Kind
}

// Schema is an ordered list of columns with name lookup.
// It is built once per table and shared by all rows of that table.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema validates the column list and builds a Schema.
// Empty and duplicate column names are rejected.
func NewSchema(columns []Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", len(s.columns))
		}
		if _, exists := s.index[name]; exists {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		s.index[name] = len(s.columns)
		s.columns = append(s.columns, Column{Name: name, Kind: col.Kind})
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the column list.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the schema declares the named column.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Column returns the column at position i.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// conforms checks that v is null or matches the declared kind.
func (k Kind) conforms(v any) bool {
	if v == nil {
		return true
	}
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindDate:
		_, ok := v.(time.Time)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	}
	return false
}
