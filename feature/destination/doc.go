// Package destination implements the relational side of the sync on GORM.
//
// Store satisfies reconcile.Store:
//
//   - Snapshot: SELECT id, is_deleted FROM <table>, split into live and deleted sets.
//   - MarkDeleted / Reactivate: one UPDATE ... SET is_deleted = ? WHERE id IN (...)
//     per call, committed immediately; empty sets never reach the database.
//   - Upsert: INSERT ... ON CONFLICT (id) DO UPDATE SET <all other columns>
//     in batches inside a single per-table transaction.
//
// CheckSchema reports, per table, whether the destination exists and carries
// the identifier and soft-delete columns.
//
// Column names for the identifier and soft-delete flag are configurable
// through Options and default to "id" and "is_deleted". The same SQL is
// generated for postgres, mysql and sqlite by the GORM dialector in use.
package destination
