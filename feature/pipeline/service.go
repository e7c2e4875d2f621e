package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"

	"sheet-sync/core/database"
	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage"
	"sheet-sync/feature/destination"
	"sheet-sync/feature/normalize"
	"sheet-sync/feature/source"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	// ErrRunInProgress is returned when a run is triggered while another is still going.
	ErrRunInProgress = errors.New("a sync run is already in progress")
	// ErrTablesFailed is returned by callers that need a non-zero exit when a run had failed tables.
	ErrTablesFailed = errors.New("one or more tables failed to load")
)

// Service runs extract, normalize and load end to end. Runs are serialized:
// only one may be in flight at a time.
type Service struct {
	cfg     Config
	dbCfg   database.Config
	source  source.Source
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	connect func(database.Config) (*gorm.DB, error)

	running sync.Mutex
	mu      sync.RWMutex
	last    *reconcile.RunSummary
	checks  singleflight.Group
}

// NewService creates a sync service. client may be nil when storage is not
// configured; summaries are then not archived.
func NewService(cfg Config, dbCfg database.Config, src source.Source, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		dbCfg:   dbCfg,
		source:  src,
		client:  client,
		bucket:  bucket,
		logger:  logger,
		connect: database.Connect,
	}
}

// Run performs one synchronization. The destination connection is opened
// for the run and always closed before returning. A source or destination
// that cannot be reached aborts the run; per-table failures do not and are
// reported in the summary.
func (s *Service) Run(ctx context.Context, dryRun bool) (*reconcile.RunSummary, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	raws, err := s.source.Extract(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Data extraction completed", zap.Int("worksheets", len(raws)))

	tables := normalize.New(normalize.Options{
		IDColumn:      s.cfg.IDColumn,
		DeletedColumn: s.cfg.DeletedColumn,
	}, s.logger).All(raws)
	s.logger.Info("Completed transformation", zap.Int("tables", len(tables)))

	s.logger.Info("Establishing database connection", zap.String("driver", s.dbCfg.Driver))
	db, err := s.connect(s.dbCfg)
	if err != nil {
		s.logger.Error("Failed to connect to the database", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", reconcile.ErrConnectivity, err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			s.logger.Warn("Failed to close database connection", zap.Error(err))
			return
		}
		s.logger.Info("Database connection closed")
	}()

	store := destination.NewStore(db, destination.Options{
		IDColumn:      s.cfg.IDColumn,
		DeletedColumn: s.cfg.DeletedColumn,
		BatchSize:     s.cfg.BatchSize,
		Logger:        s.logger,
	})
	cfg := s.cfg
	cfg.DryRun = cfg.DryRun || dryRun
	summary := NewOrchestrator(store, cfg, s.logger).Run(ctx, tables)

	s.archive(ctx, summary)

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return summary, nil
}

// CheckSchema opens a connection and checks every table of the load order.
// Concurrent callers share one check.
func (s *Service) CheckSchema(ctx context.Context) (*destination.SchemaReport, error) {
	v, err, _ := s.checks.Do("schema", func() (any, error) {
		db, err := s.connect(s.dbCfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", reconcile.ErrConnectivity, err)
		}
		defer database.Close(db)

		store := destination.NewStore(db, destination.Options{
			IDColumn:      s.cfg.IDColumn,
			DeletedColumn: s.cfg.DeletedColumn,
		})
		return store.CheckSchema(ctx, s.cfg.TableOrder), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*destination.SchemaReport), nil
}

// Last returns the summary of the most recent completed run, or nil.
func (s *Service) Last() *reconcile.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// archive uploads the summary as JSON. Failures are logged only; the run
// itself already happened.
func (s *Service) archive(ctx context.Context, summary *reconcile.RunSummary) {
	if s.client == nil || s.cfg.ArchivePrefix == "" {
		return
	}
	name := path.Join(s.cfg.ArchivePrefix, summary.RunID+".json")
	if err := storage.PutJSON(ctx, s.client, s.bucket, name, summary); err != nil {
		s.logger.Warn("Failed to archive run summary", zap.String("object", name), zap.Error(err))
		return
	}
	s.logger.Info("Archived run summary", zap.String("object", name))
}
