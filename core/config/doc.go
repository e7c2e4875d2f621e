// Package config provides configuration management for sheet-sync.
//
// It loads an optional .env file with godotenv, then reads environment
// variables through Viper. Defaults come from the `default` struct tags of
// each section and are registered by walking the structs with reflection.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP trigger port and API key
//   - Storage: S3/MinIO credentials and bucket (optional)
//   - Log: Logging level and format
//   - Database: destination driver and connection details
//   - Source: Google Sheets or workbook location and worksheet indices
//   - Sync: table load order, identifier and soft-delete columns, batch size
//
// Nested keys map to upper-case environment variables joined by underscores,
// e.g. DATABASE_HOST or SYNC_TABLE_ORDER=customers,orders,invoices.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.TableOrder)
package config
