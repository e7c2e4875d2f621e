package destination

import (
	"context"
	"fmt"

	"sheet-sync/core/dataset"
	"sheet-sync/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Upsert writes every row of table in one transaction. On identifier conflict
// every other column is overwritten with the incoming value, so a cell that
// was emptied in the source becomes NULL. Rows without a soft-delete value
// are written as live. Any failure rolls back the whole table.
func (s *Store) Upsert(ctx context.Context, table *dataset.Table) (int, error) {
	if !table.Schema.Has(s.idColumn) {
		return 0, reconcile.NewTableError(reconcile.ErrSchema, table.Name, fmt.Errorf("column %q missing", s.idColumn))
	}

	tbl, err := table.WithColumn(dataset.Column{Name: s.deletedColumn, Kind: dataset.KindBool}, false)
	if err != nil {
		return 0, reconcile.NewTableError(reconcile.ErrSchema, table.Name, err)
	}
	if tbl.Len() == 0 {
		return 0, nil
	}

	records := tbl.Records()
	for i, row := range tbl.Rows {
		if _, ok := tbl.ID(row, s.idColumn); !ok {
			return 0, reconcile.NewTableError(reconcile.ErrDataIntegrity, table.Name,
				fmt.Errorf("row %d has no %s", i, s.idColumn))
		}
		if records[i][s.deletedColumn] == nil {
			records[i][s.deletedColumn] = false
		}
	}

	updates := make([]string, 0, tbl.Schema.Len()-1)
	for _, name := range tbl.Schema.Names() {
		if name != s.idColumn {
			updates = append(updates, name)
		}
	}
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: s.idColumn}},
		DoUpdates: clause.AssignmentColumns(updates),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(records); start += s.batchSize {
			end := start + s.batchSize
			if end > len(records) {
				end = len(records)
			}
			batch := records[start:end]
			if err := tx.Table(tbl.Name).Clauses(onConflict).Create(&batch).Error; err != nil {
				return fmt.Errorf("rows %d-%d: %w", start, end-1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, reconcile.NewTableError(reconcile.ErrTransaction, table.Name, err)
	}

	return len(records), nil
}
