// Package logger provides a structured logging facility based on Zap.
//
// Every sync run logs through one *zap.Logger. Table-level messages carry the
// run id and table name (WithTable) so a run can be followed table by table;
// HTTP-triggered runs additionally carry the request RayID (WithRayID).
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
//
//	l := logger.WithTable(log, runID, "customers")
//	l.Error("Upsert failed", zap.Error(err))
package logger
