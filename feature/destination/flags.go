package destination

import (
	"context"
	"fmt"

	"sheet-sync/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// MarkDeleted flags ids as soft-deleted.
func (s *Store) MarkDeleted(ctx context.Context, table string, ids reconcile.IDSet) error {
	return s.setDeleted(ctx, table, ids, true)
}

// Reactivate clears the soft-delete flag on ids.
func (s *Store) Reactivate(ctx context.Context, table string, ids reconcile.IDSet) error {
	return s.setDeleted(ctx, table, ids, false)
}

// setDeleted issues one UPDATE ... WHERE id IN (...) and commits it on its
// own. An empty set is a no-op that never reaches the database.
func (s *Store) setDeleted(ctx context.Context, table string, ids reconcile.IDSet, deleted bool) error {
	if ids.Len() == 0 {
		return nil
	}

	values := s.storedValues(table, ids)
	result := s.db.WithContext(ctx).
		Table(table).
		Where(clause.IN{Column: clause.Column{Name: s.idColumn}, Values: values}).
		Update(s.deletedColumn, deleted)
	if result.Error != nil {
		return reconcile.NewTableError(reconcile.ErrTransaction, table,
			fmt.Errorf("failed to set %s=%t on %d rows: %w", s.deletedColumn, deleted, len(values), result.Error))
	}
	if result.RowsAffected != int64(len(values)) {
		s.logger.Warn("Flag update row count differs from plan",
			zap.String("table", table),
			zap.Bool("deleted", deleted),
			zap.Int("planned", len(values)),
			zap.Int64("affected", result.RowsAffected))
	}
	return nil
}
