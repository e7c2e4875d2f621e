package normalize

import (
	"fmt"
	"strings"

	"sheet-sync/core/dataset"
	"sheet-sync/feature/source"

	"go.uber.org/zap"
)

// Options names the identifier and soft-delete columns.
type Options struct {
	IDColumn      string
	DeletedColumn string
}

// Report counts what happened to the rows of one worksheet.
type Report struct {
	Table string
	// Rows is the number of rows kept.
	Rows int
	// Empty is the number of rows dropped because every cell was blank.
	Empty int
	// Rejected is the number of rows dropped for a missing identifier.
	Rejected int
	// Duplicates is the number of rows superseded by a later row with the same identifier.
	Duplicates int
}

// Normalizer turns raw worksheets into typed, schema-validated tables.
type Normalizer struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Normalizer.
func New(opts Options, logger *zap.Logger) *Normalizer {
	if opts.IDColumn == "" {
		opts.IDColumn = "id"
	}
	if opts.DeletedColumn == "" {
		opts.DeletedColumn = "is_deleted"
	}
	return &Normalizer{opts: opts, logger: logger}
}

// All normalizes every worksheet. A worksheet that fails is logged and left
// out; the others are still returned, keyed by table name.
func (n *Normalizer) All(raws []source.RawTable) map[string]*dataset.Table {
	tables := make(map[string]*dataset.Table, len(raws))
	for _, raw := range raws {
		name := raw.Name()
		if _, exists := tables[name]; exists {
			n.logger.Error("Duplicate worksheet for table, keeping the first", zap.String("table", name), zap.String("title", raw.Title))
			continue
		}

		table, report, err := n.Table(raw)
		if err != nil {
			n.logger.Error("Error processing worksheet", zap.String("title", raw.Title), zap.Error(err))
			continue
		}
		n.logger.Info("Cleaned worksheet",
			zap.String("table", report.Table),
			zap.Int("rows", report.Rows),
			zap.Int("empty", report.Empty),
			zap.Int("rejected", report.Rejected),
			zap.Int("duplicates", report.Duplicates))
		tables[name] = table
	}
	return tables
}

// Table normalizes one worksheet.
//
// Blank cells become null and fully blank rows are dropped. When the table
// has an identifier column, rows without an identifier are rejected and
// duplicate identifiers collapse to the last row carrying them, kept at the
// position of that last occurrence.
func (n *Normalizer) Table(raw source.RawTable) (*dataset.Table, Report, error) {
	name := raw.Name()
	report := Report{Table: name}

	schema, positions, dropped, err := n.buildSchema(raw.Header)
	if err != nil {
		return nil, report, fmt.Errorf("worksheet %q: %w", raw.Title, err)
	}
	if len(dropped) > 0 {
		n.logger.Warn("Ignoring columns without a header", zap.String("table", name), zap.Strings("columns", dropped))
	}

	trim := make([]bool, schema.Len())
	for i, col := range schema.Columns() {
		trim[i] = col.Name == n.opts.IDColumn || strings.Contains(col.Name, "id")
	}

	rows := make([][]any, 0, len(raw.Records))
	for _, rec := range raw.Records {
		values := make([]any, schema.Len())
		blank := true
		for i, pos := range positions {
			cell := ""
			if pos < len(rec) {
				cell = rec[pos]
			}
			values[i] = parseCell(schema.Column(i).Kind, cell, trim[i])
			if values[i] != nil {
				blank = false
			}
		}
		if blank {
			report.Empty++
			continue
		}
		rows = append(rows, values)
	}

	if idx, ok := schema.Index(n.opts.IDColumn); ok {
		rows = n.dedupe(name, rows, idx, &report)
	}

	table := dataset.NewTable(name, schema)
	for _, values := range rows {
		if err := table.Append(values); err != nil {
			return nil, report, err
		}
	}
	report.Rows = table.Len()
	return table, report, nil
}

// dedupe drops rows without an identifier and keeps only the last row for
// each identifier.
func (n *Normalizer) dedupe(table string, rows [][]any, idx int, report *Report) [][]any {
	last := make(map[string]int, len(rows))
	for i, values := range rows {
		if id, ok := values[idx].(string); ok {
			last[id] = i
		}
	}

	kept := make([][]any, 0, len(last))
	for i, values := range rows {
		id, ok := values[idx].(string)
		if !ok {
			report.Rejected++
			continue
		}
		if last[id] != i {
			report.Duplicates++
			continue
		}
		kept = append(kept, values)
	}

	if report.Rejected > 0 {
		n.logger.Warn("Dropped rows without identifier", zap.String("table", table), zap.Int("rows", report.Rejected))
	}
	if report.Duplicates > 0 {
		n.logger.Warn("Collapsed duplicate identifiers, last row wins", zap.String("table", table), zap.Int("rows", report.Duplicates))
	}
	return kept
}
