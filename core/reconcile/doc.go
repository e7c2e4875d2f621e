// Package reconcile decides which destination rows must change their
// soft-delete flag after a fresh extraction.
//
// The engine compares the identifiers of the current source rows against a
// Snapshot of the destination (every stored identifier, split into live and
// soft-deleted) and produces a Result:
//
//	ToDelete     = live - current          (rows that disappeared)
//	ToReactivate = current ∩ deleted       (rows that reappeared)
//
// Reconciliation is read-only. ApplyFlags executes a Result against a Store as
// two batched statements that each commit immediately; row contents are then
// written separately by Store.Upsert. Because every step is a set-based
// recomputation, a run interrupted between the flag updates and the upsert is
// repaired by the next run.
//
// # Errors
//
// Failures are wrapped in TableError with one of ErrConnectivity, ErrSchema,
// ErrDataIntegrity or ErrTransaction so the orchestrator can turn them into a
// per-table outcome instead of aborting the run.
//
// # Usage
//
//	res, err := reconcile.Reconcile(ctx, store, table, "id")
//	if err != nil {
//	    return err
//	}
//	deleted, reactivated, err := reconcile.ApplyFlags(ctx, store, table.Name, res)
package reconcile
