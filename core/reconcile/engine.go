package reconcile

import (
	"context"
	"fmt"

	"sheet-sync/core/dataset"
)

// CurrentIDs collects the identifiers of every row in the table. Rows with a
// null or blank identifier contribute nothing. A table whose schema lacks
// idColumn is a schema error: it must be skipped, not partially processed.
func CurrentIDs(table *dataset.Table, idColumn string) (IDSet, error) {
	if !table.Schema.Has(idColumn) {
		return nil, NewTableError(ErrSchema, table.Name, fmt.Errorf("column %q missing", idColumn))
	}

	ids := make(IDSet, table.Len())
	for _, row := range table.Rows {
		if id, ok := table.ID(row, idColumn); ok {
			ids.Add(id)
		}
	}
	return ids, nil
}

// Plan classifies identifiers against the destination snapshot.
//
//	ToDelete     = live - current
//	ToReactivate = current ∩ deleted
//
// Identifiers that are current and already live need no flag change and
// appear in neither set. New identifiers are left to the upsert.
func Plan(current IDSet, snap Snapshot) Result {
	live := snap.Live
	if live == nil {
		live = IDSet{}
	}
	deleted := snap.Deleted
	if deleted == nil {
		deleted = IDSet{}
	}
	return Result{
		ToDelete:     live.Difference(current),
		ToReactivate: current.Intersect(deleted),
	}
}

// Reconcile computes the flag changes for one table. It reads the destination
// but never writes to it; a failed read is reported as a connectivity error so
// the caller can abandon the table before anything is applied.
func Reconcile(ctx context.Context, store Store, table *dataset.Table, idColumn string) (Result, error) {
	current, err := CurrentIDs(table, idColumn)
	if err != nil {
		return Result{}, err
	}

	snap, err := store.Snapshot(ctx, table.Name)
	if err != nil {
		return Result{}, NewTableError(ErrConnectivity, table.Name, err)
	}

	return Plan(current, snap), nil
}
