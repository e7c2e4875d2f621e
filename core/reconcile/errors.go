package reconcile

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by the engine or a Store is wrapped in a
// TableError carrying one of these, so callers can classify with errors.Is.
var (
	// ErrConnectivity means the source or destination could not be reached.
	ErrConnectivity = errors.New("connectivity error")
	// ErrSchema means the table is missing a required column or has columns the destination lacks.
	ErrSchema = errors.New("schema error")
	// ErrDataIntegrity means rows carried null or duplicate identifiers.
	ErrDataIntegrity = errors.New("data integrity error")
	// ErrTransaction means a write failed and was rolled back.
	ErrTransaction = errors.New("transaction error")
)

// TableError ties an error kind to the table it happened on.
type TableError struct {
	Kind  error
	Table string
	Err   error
}

func (e *TableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: table %s", e.Kind, e.Table)
	}
	return fmt.Sprintf("%s: table %s: %v", e.Kind, e.Table, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *TableError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewTableError wraps err as a failure of the given kind on table.
func NewTableError(kind error, table string, err error) error {
	return &TableError{Kind: kind, Table: table, Err: err}
}

// KindOf returns the error kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrConnectivity, ErrSchema, ErrDataIntegrity, ErrTransaction} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
