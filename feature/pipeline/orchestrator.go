package pipeline

import (
	"context"
	"fmt"
	"time"

	"sheet-sync/core/dataset"
	"sheet-sync/core/logger"
	"sheet-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator loads tables into the destination one at a time in a fixed
// order. Every table runs through its own state machine and a failure is
// recorded in the summary without stopping the tables after it.
type Orchestrator struct {
	store    reconcile.Store
	order    []string
	idColumn string
	dryRun   bool
	logger   *zap.Logger
}

// NewOrchestrator creates an orchestrator over store.
func NewOrchestrator(store reconcile.Store, cfg Config, logger *zap.Logger) *Orchestrator {
	idColumn := cfg.IDColumn
	if idColumn == "" {
		idColumn = "id"
	}
	return &Orchestrator{
		store:    store,
		order:    cfg.TableOrder,
		idColumn: idColumn,
		dryRun:   cfg.DryRun,
		logger:   logger,
	}
}

// Run processes the tables in load order. Tables missing from the input are
// recorded as skipped and nothing is inferred about their rows; input tables
// outside the load order are ignored.
func (o *Orchestrator) Run(ctx context.Context, tables map[string]*dataset.Table) *reconcile.RunSummary {
	summary := &reconcile.RunSummary{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Tables:  make([]reconcile.TableResult, 0, len(o.order)),
	}
	l := o.logger.With(zap.String("run_id", summary.RunID))
	l.Info("Starting sync run", zap.Strings("order", o.order), zap.Int("tables", len(tables)), zap.Bool("dry_run", o.dryRun))

	ordered := make(map[string]bool, len(o.order))
	for _, name := range o.order {
		ordered[name] = true
	}
	for name := range tables {
		if !ordered[name] {
			l.Warn("Ignoring table not in load order", zap.String("table", name))
		}
	}

	for _, name := range o.order {
		table, ok := tables[name]
		if !ok {
			l.Info("Table not present in source, skipping", zap.String("table", name))
			summary.Tables = append(summary.Tables, reconcile.TableResult{
				Table:  name,
				State:  reconcile.StatePending,
				Status: reconcile.StatusSkipped,
				Reason: "not present in source",
			})
			continue
		}
		summary.Tables = append(summary.Tables, o.loadTable(ctx, logger.WithTable(o.logger, summary.RunID, name), table))
	}

	summary.Finished = time.Now().UTC()
	l.Info("Finished sync run",
		zap.Int("success", summary.Count(reconcile.StatusSuccess)),
		zap.Int("skipped", summary.Count(reconcile.StatusSkipped)),
		zap.Int("failed", summary.Count(reconcile.StatusFailed)),
		zap.Duration("duration", summary.Finished.Sub(summary.Started)))

	return summary
}

// loadTable walks one table through
// pending -> connected -> reconciled -> flagged -> upserted -> done.
func (o *Orchestrator) loadTable(ctx context.Context, l *zap.Logger, table *dataset.Table) reconcile.TableResult {
	res := reconcile.TableResult{
		Table:  table.Name,
		State:  reconcile.StatePending,
		Rows:   table.Len(),
		DryRun: o.dryRun,
	}
	l.Info("Loading table", zap.Int("rows", table.Len()))

	if !table.Schema.Has(o.idColumn) {
		return o.finish(l, res, reconcile.NewTableError(reconcile.ErrSchema, table.Name, fmt.Errorf("column %q missing", o.idColumn)))
	}
	res.State = reconcile.StateConnected

	if err := o.validate(ctx, table); err != nil {
		return o.finish(l, res, err)
	}

	plan, err := reconcile.Reconcile(ctx, o.store, table, o.idColumn)
	if err != nil {
		return o.finish(l, res, err)
	}
	res.State = reconcile.StateReconciled
	l.Info("Reconciled table",
		zap.Int("to_delete", plan.ToDelete.Len()),
		zap.Int("to_reactivate", plan.ToReactivate.Len()))

	if o.dryRun {
		res.Deleted = plan.ToDelete.Len()
		res.Reactivated = plan.ToReactivate.Len()
		return o.finish(l, res, nil)
	}

	res.Deleted, res.Reactivated, err = reconcile.ApplyFlags(ctx, o.store, table.Name, plan)
	if err != nil {
		return o.finish(l, res, err)
	}
	res.State = reconcile.StateFlagged
	l.Info("Soft-deleted rows", zap.Int("deleted", res.Deleted), zap.Int("reactivated", res.Reactivated))

	res.Upserted, err = o.store.Upsert(ctx, table)
	if err != nil {
		return o.finish(l, res, err)
	}
	res.State = reconcile.StateUpserted
	l.Info("Successfully upserted data into table", zap.Int("rows", res.Upserted))

	res.State = reconcile.StateDone
	return o.finish(l, res, nil)
}

// validate rejects tables whose columns the destination table does not have
// before anything is read or written.
func (o *Orchestrator) validate(ctx context.Context, table *dataset.Table) error {
	lister, ok := o.store.(reconcile.ColumnLister)
	if !ok {
		return nil
	}
	columns, err := lister.Columns(ctx, table.Name)
	if err != nil {
		return reconcile.NewTableError(reconcile.ErrConnectivity, table.Name, err)
	}
	if len(columns) == 0 {
		return reconcile.NewTableError(reconcile.ErrSchema, table.Name, fmt.Errorf("destination table does not exist"))
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	var unknown []string
	for _, name := range table.Schema.Names() {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return reconcile.NewTableError(reconcile.ErrSchema, table.Name, fmt.Errorf("destination lacks columns %v", unknown))
	}
	return nil
}

// finish sets the terminal status. Schema errors skip the table; any other
// error fails it.
func (o *Orchestrator) finish(l *zap.Logger, res reconcile.TableResult, err error) reconcile.TableResult {
	if err == nil {
		res.Status = reconcile.StatusSuccess
		l.Info("Finished table",
			zap.String("state", string(res.State)),
			zap.Int("upserted", res.Upserted),
			zap.Bool("dry_run", res.DryRun))
		return res
	}

	res.Reason = err.Error()
	if reconcile.KindOf(err) == reconcile.ErrSchema {
		res.Status = reconcile.StatusSkipped
		l.Warn("Skipping table", zap.String("state", string(res.State)), zap.Error(err))
		return res
	}

	l.Error("Table failed", zap.String("state", string(res.State)), zap.Error(err))
	res.State = reconcile.StateFailed
	res.Status = reconcile.StatusFailed
	return res
}
