package destination

import (
	"context"
	"fmt"

	"sheet-sync/core/database"
)

// SchemaReport is the result of checking destination tables against the
// column conventions of a sync.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one destination table.
type TableReport struct {
	Exists         bool              `json:"exists"`
	Columns        map[string]string `json:"columns,omitempty"` // name -> type
	MissingColumns []string          `json:"missing_columns"`
	Status         string            `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies that every table exists and carries the identifier
// and soft-delete columns. A table that cannot be inspected is reported in
// Errors; the remaining tables are still checked.
func (s *Store) CheckSchema(ctx context.Context, tables []string) *SchemaReport {
	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport, len(tables)),
		Errors:  []string{},
	}

	for _, table := range tables {
		columns, err := database.GetTableColumns(s.db.WithContext(ctx), table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Tables[table] = TableReport{MissingColumns: []string{}, Status: "error"}
			report.Matched = false
			continue
		}

		tblReport := TableReport{
			Exists:         len(columns) > 0,
			MissingColumns: []string{},
			Status:         "ok",
		}
		if !tblReport.Exists {
			tblReport.Status = "missing"
			report.Tables[table] = tblReport
			report.Matched = false
			continue
		}

		tblReport.Columns = make(map[string]string, len(columns))
		for _, c := range columns {
			tblReport.Columns[c.Field] = c.Type
		}
		for _, required := range []string{s.idColumn, s.deletedColumn} {
			if _, ok := tblReport.Columns[required]; !ok {
				tblReport.MissingColumns = append(tblReport.MissingColumns, required)
			}
		}
		if len(tblReport.MissingColumns) > 0 {
			tblReport.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tblReport
	}

	return report
}
