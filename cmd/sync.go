package cmd

import (
	"context"
	"fmt"
	"time"

	"sheet-sync/core/config"
	"sheet-sync/core/logger"
	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage"
	"sheet-sync/feature/pipeline"
	"sheet-sync/feature/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSync bool

// syncCmd runs one synchronization and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one spreadsheet to database synchronization",
	Long: `Extracts the configured worksheets, normalizes them and loads every table
in SYNC_TABLE_ORDER into the destination database.

Examples:
  # Full run
  sheet-sync sync

  # Reconcile only, report what would change
  sheet-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Reconcile only, do not write to the database")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.Sync.TableOrder) == 0 {
		return fmt.Errorf("SYNC_TABLE_ORDER is empty: nothing to load")
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	svc, err := newSyncService(ctx, cfg, logg)
	if err != nil {
		return err
	}

	summary, err := svc.Run(ctx, dryRunSync)
	if err != nil {
		return fmt.Errorf("sync run aborted: %w", err)
	}

	printSummary(summary, time.Since(startTime))

	if summary.Failed() {
		return pipeline.ErrTablesFailed
	}
	return nil
}

// newSyncService wires the source, optional storage and destination settings
// into a pipeline service.
func newSyncService(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*pipeline.Service, error) {
	var client storage.Client
	if cfg.Storage.Enabled() {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.CheckBucket(ctx, c, cfg.Storage.Bucket); err != nil {
			return nil, err
		}
		client = c
	}

	src, err := source.New(ctx, cfg.Source, client, cfg.Storage.Bucket, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	return pipeline.NewService(cfg.Sync, cfg.Database, src, client, cfg.Storage.Bucket, logg), nil
}

func printSummary(summary *reconcile.RunSummary, elapsed time.Duration) {
	fmt.Printf("\n=== Sync Run %s ===\n", summary.RunID)
	for _, t := range summary.Tables {
		fmt.Printf("%-24s %-8s rows=%d deleted=%d reactivated=%d upserted=%d",
			t.Table, t.Status, t.Rows, t.Deleted, t.Reactivated, t.Upserted)
		if t.Reason != "" {
			fmt.Printf(" reason=%q", t.Reason)
		}
		fmt.Println()
	}
	fmt.Printf("Success: %d  Skipped: %d  Failed: %d\n",
		summary.Count(reconcile.StatusSuccess),
		summary.Count(reconcile.StatusSkipped),
		summary.Count(reconcile.StatusFailed))
	fmt.Printf("Execution Time: %s\n", elapsed.String())
}
