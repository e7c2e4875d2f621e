// Package database handles the destination database connection and schema inspection.
//
// It wraps GORM and picks the dialector from the configured driver: postgres
// (the primary target), mysql, or sqlite (local runs and tests).
//
// # Connect
//
// A sync run is strictly sequential, so Connect configures the pool with a
// single open connection that is reused across tables. Callers release it with
// Close when the run ends, whatever its outcome.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a destination table. The orchestrator
// uses it to reject sheets whose header names columns the table does not have,
// and the check command uses it to verify the identifier and soft-delete
// columns exist.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer database.Close(db)
//
//	columns, err := database.GetTableColumns(db, "customers")
package database
