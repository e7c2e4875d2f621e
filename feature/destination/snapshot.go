package destination

import (
	"context"
	"fmt"
	"strings"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/utils"

	"gorm.io/gorm/clause"
)

// Snapshot reads every identifier of table with its soft-delete flag in a
// single query. A NULL flag counts as live. Identifiers are trimmed for
// comparison; the stored values are remembered so flag updates hit the rows
// as they are actually keyed.
func (s *Store) Snapshot(ctx context.Context, table string) (reconcile.Snapshot, error) {
	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Table(table).
		Clauses(clause.Select{Columns: []clause.Column{{Name: s.idColumn}, {Name: s.deletedColumn}}}).
		Find(&rows).Error
	if err != nil {
		return reconcile.Snapshot{}, fmt.Errorf("failed to read identifiers from %s: %w", table, err)
	}

	snap := reconcile.Snapshot{
		Live:    make(reconcile.IDSet, len(rows)),
		Deleted: make(reconcile.IDSet),
	}
	stored := make(map[string][]string, len(rows))
	for _, row := range rows {
		raw := utils.ToString(row[s.idColumn])
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		stored[id] = append(stored[id], raw)
		if utils.ToBool(row[s.deletedColumn]) {
			snap.Deleted.Add(id)
		} else {
			snap.Live.Add(id)
		}
	}

	s.mu.Lock()
	s.stored[table] = stored
	s.mu.Unlock()
	return snap, nil
}

// storedValues expands ids into the identifier values held by table at its
// last snapshot. Identifiers never snapshotted are used as they are.
func (s *Store) storedValues(table string, ids reconcile.IDSet) []any {
	s.mu.Lock()
	stored := s.stored[table]
	s.mu.Unlock()

	values := make([]any, 0, ids.Len())
	for _, id := range ids.Sorted() {
		raws, ok := stored[id]
		if !ok {
			values = append(values, id)
			continue
		}
		for _, raw := range raws {
			values = append(values, raw)
		}
	}
	return values
}
