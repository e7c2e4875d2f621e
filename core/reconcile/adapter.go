package reconcile

import (
	"context"

	"sheet-sync/core/dataset"
)

// Store defines the destination operations the engine and orchestrator need.
// Implementations target one relational database; table names are passed per
// call so a single Store serves every table of a run.
type Store interface {
	// Snapshot reads every identifier of the table together with its
	// soft-delete flag. It must not mutate anything.
	Snapshot(ctx context.Context, table string) (Snapshot, error)

	// MarkDeleted sets the soft-delete flag on all ids in one statement and
	// commits immediately. An empty set must not issue a query.
	MarkDeleted(ctx context.Context, table string, ids IDSet) error

	// Reactivate clears the soft-delete flag on all ids in one statement and
	// commits immediately. An empty set must not issue a query.
	Reactivate(ctx context.Context, table string, ids IDSet) error

	// Upsert writes every row of the table inside one transaction, overwriting
	// all non-identifier columns on identifier conflict. It returns the number
	// of rows written.
	Upsert(ctx context.Context, table *dataset.Table) (int, error)
}

// ColumnLister is implemented by stores that can report the destination
// columns of a table. The orchestrator uses it to reject sheets that carry
// columns the destination does not have.
type ColumnLister interface {
	Columns(ctx context.Context, table string) ([]string, error)
}
