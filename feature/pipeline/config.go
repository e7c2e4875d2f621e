package pipeline

// Config holds configuration for a synchronization run.
type Config struct {
	// TableOrder is the fixed load order. Parent tables must come before
	// the tables that reference them.
	TableOrder []string `mapstructure:"table_order" default:""`
	// IDColumn is the unique identifier column shared by every table.
	IDColumn string `mapstructure:"id_column" default:"id"`
	// DeletedColumn is the boolean soft-delete flag shared by every table.
	DeletedColumn string `mapstructure:"deleted_column" default:"is_deleted"`
	// BatchSize is the number of rows per INSERT inside a table's upsert.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// DryRun stops every table after reconciliation without writing.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ArchivePrefix is the bucket prefix for run summaries. Empty disables archiving.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"runs"`
}
