package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sheet-sync/core/database"
	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage/mocks"
	"sheet-sync/feature/source"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// staticSource returns the same worksheets on every extraction.
type staticSource struct {
	tables []source.RawTable
	err    error
}

func (s *staticSource) Extract(ctx context.Context) ([]source.RawTable, error) {
	return s.tables, s.err
}

// setupDestination creates a shared in-memory SQLite database with customers,
// orders and invoices tables. The returned handle keeps the database alive
// while the service opens and closes its own connection.
func setupDestination(t *testing.T, name string) (*gorm.DB, database.Config) {
	cfg := database.Config{Driver: "sqlite", Name: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)}

	db, err := gorm.Open(sqlite.Open(cfg.Name), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE customers (id TEXT PRIMARY KEY, name TEXT NOT NULL, signup_date DATE, is_deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
		`CREATE TABLE orders (id TEXT PRIMARY KEY, customer_id TEXT NOT NULL, is_deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
		`CREATE TABLE invoices (id TEXT PRIMARY KEY, total TEXT, is_deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
		`INSERT INTO customers (id, name) VALUES ('B', 'seed'), ('C', 'seed'), ('D', 'seed')`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db, cfg
}

func customerSheets() []source.RawTable {
	return []source.RawTable{
		{
			Title:   "Customers",
			Header:  []string{"ID", "Name", "Signup Date"},
			Records: [][]string{{"A", "Alice", "2024-01-15"}, {"B", "Bob", ""}, {"C", "Carol", "3/1/2024"}},
		},
		{
			// customer_id is missing on the only row: NOT NULL makes the upsert fail
			Title:   "Orders",
			Header:  []string{"id", "customer_id"},
			Records: [][]string{{"O1", ""}},
		},
		{
			Title:   "Invoices",
			Header:  []string{"id", "total"},
			Records: [][]string{{"I1", "10.00"}},
		},
	}
}

func newTestService(t *testing.T, name string, src source.Source) (*Service, *gorm.DB) {
	db, dbCfg := setupDestination(t, name)
	svc := NewService(Config{
		TableOrder: []string{"customers", "orders", "invoices"},
		BatchSize:  2,
	}, dbCfg, src, nil, "", zap.NewNop())
	return svc, db
}

func TestService_Run(t *testing.T) {
	svc, db := newTestService(t, "service_run", &staticSource{tables: customerSheets()})

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, summary.Tables, 3)

	customers := resultFor(t, summary, "customers")
	assert.Equal(t, reconcile.StatusSuccess, customers.Status)
	assert.Equal(t, 1, customers.Deleted)
	assert.Equal(t, 3, customers.Upserted)

	assert.Equal(t, reconcile.StatusFailed, resultFor(t, summary, "orders").Status)
	assert.Equal(t, reconcile.StatusSuccess, resultFor(t, summary, "invoices").Status)
	assert.True(t, summary.Failed())

	var deleted []string
	require.NoError(t, db.Table("customers").Where("is_deleted = ?", true).Pluck("id", &deleted).Error)
	assert.Equal(t, []string{"D"}, deleted)

	var orders int64
	require.NoError(t, db.Table("orders").Count(&orders).Error)
	assert.Zero(t, orders, "failed upsert rolled back")

	var invoices int64
	require.NoError(t, db.Table("invoices").Count(&invoices).Error)
	assert.Equal(t, int64(1), invoices)

	assert.Same(t, summary, svc.Last())

	// A second run with the same source changes no flags
	summary, err = svc.Run(context.Background(), false)
	require.NoError(t, err)
	customers = resultFor(t, summary, "customers")
	assert.Zero(t, customers.Deleted)
	assert.Zero(t, customers.Reactivated)
}

func TestService_DryRun(t *testing.T) {
	svc, db := newTestService(t, "service_dry_run", &staticSource{tables: customerSheets()})

	summary, err := svc.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, resultFor(t, summary, "customers").Deleted)

	var count int64
	require.NoError(t, db.Table("customers").Where("is_deleted = ?", true).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Table("invoices").Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_SourceFailureAbortsRun(t *testing.T) {
	srcErr := fmt.Errorf("%w: spreadsheet not found", reconcile.ErrConnectivity)
	svc, _ := newTestService(t, "service_source_failure", &staticSource{err: srcErr})

	_, err := svc.Run(context.Background(), false)
	assert.ErrorIs(t, err, reconcile.ErrConnectivity)
	assert.Nil(t, svc.Last())
}

func TestService_DatabaseFailureAbortsRun(t *testing.T) {
	svc, _ := newTestService(t, "service_db_failure", &staticSource{tables: customerSheets()})
	svc.connect = func(database.Config) (*gorm.DB, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.Run(context.Background(), false)
	assert.ErrorIs(t, err, reconcile.ErrConnectivity)
	assert.ErrorContains(t, err, "connection refused")
}

func TestService_RunInProgress(t *testing.T) {
	svc, _ := newTestService(t, "service_in_progress", &staticSource{tables: customerSheets()})

	svc.running.Lock()
	defer svc.running.Unlock()

	_, err := svc.Run(context.Background(), false)
	assert.ErrorIs(t, err, ErrRunInProgress)
}

func TestService_ArchivesSummary(t *testing.T) {
	_, dbCfg := setupDestination(t, "service_archive")
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(Config{TableOrder: []string{"invoices"}, ArchivePrefix: "runs"}, dbCfg,
		&staticSource{tables: customerSheets()}, mockClient, "test-bucket", zap.NewNop())

	summary, err := svc.Run(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, summary.Failed())
	mockClient.AssertCalled(t, "PutObject", mock.Anything, "test-bucket", "runs/"+summary.RunID+".json",
		mock.Anything, mock.Anything, mock.Anything)
}
