package destination

import (
	"context"
	"sync"

	"sheet-sync/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configures the column conventions shared by every destination table.
type Options struct {
	// IDColumn is the unique, string-typed identifier column.
	IDColumn string
	// DeletedColumn is the boolean soft-delete flag column.
	DeletedColumn string
	// BatchSize is the number of rows per INSERT statement inside an upsert.
	BatchSize int
	// Logger receives flag updates that matched fewer rows than planned.
	Logger *zap.Logger
}

// Store is the relational destination. It implements reconcile.Store and
// reconcile.ColumnLister on top of a single GORM connection.
type Store struct {
	db            *gorm.DB
	idColumn      string
	deletedColumn string
	batchSize     int
	logger        *zap.Logger

	mu sync.Mutex
	// stored maps each trimmed identifier of the last snapshot of a table
	// to the values actually held in the identifier column.
	stored map[string]map[string][]string
}

// NewStore creates a destination store over db.
func NewStore(db *gorm.DB, opts Options) *Store {
	if opts.IDColumn == "" {
		opts.IDColumn = "id"
	}
	if opts.DeletedColumn == "" {
		opts.DeletedColumn = "is_deleted"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		db:            db,
		idColumn:      opts.IDColumn,
		deletedColumn: opts.DeletedColumn,
		batchSize:     opts.BatchSize,
		logger:        opts.Logger,
		stored:        make(map[string]map[string][]string),
	}
}

// Columns lists the destination columns of table.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	return database.ColumnNames(s.db.WithContext(ctx), table)
}
