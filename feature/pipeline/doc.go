// Package pipeline runs a full synchronization: extract worksheets, normalize
// them into tables and load them into the destination.
//
// The Orchestrator processes tables strictly in the configured load order.
// For each table it validates the schema, reconciles identifiers, applies
// soft-deletes and reactivations, then upserts every row. A table that fails
// is recorded in the RunSummary and the next table still runs.
//
// Service wraps one run with connection management and summary archiving,
// and serializes runs so at most one is in flight. The HTTP routes are:
//
//	POST /sync             trigger a run (?dry_run=true to reconcile only)
//	GET  /sync/last        summary of the last completed run
//	GET  /sync/schema      destination schema check for the load order
package pipeline
