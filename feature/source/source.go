package source

import (
	"context"
	"fmt"
	"strings"

	"sheet-sync/core/storage"

	"go.uber.org/zap"
)

// RawTable is one worksheet as extracted: a header row and the data rows
// below it, every cell as text.
type RawTable struct {
	Title   string
	Header  []string
	Records [][]string
}

// Name returns the destination table name derived from the worksheet title.
func (r RawTable) Name() string {
	return TableName(r.Title)
}

// Source extracts worksheets from a spreadsheet.
type Source interface {
	// Extract reads every configured worksheet. Failing to open the
	// spreadsheet is an error; a single unreadable worksheet is logged and
	// skipped.
	Extract(ctx context.Context) ([]RawTable, error)
}

// TableName maps a worksheet title to a table name: lower case, spaces
// replaced with underscores.
func TableName(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}

// New builds the Source selected by cfg.Kind. The storage client is only
// needed for workbooks read from a bucket and may be nil otherwise.
func New(ctx context.Context, cfg Config, client storage.Client, bucket string, logger *zap.Logger) (Source, error) {
	switch strings.ToLower(cfg.Kind) {
	case "sheets", "":
		return NewSheetsSource(ctx, cfg, logger)
	case "workbook":
		return NewWorkbookSource(cfg, client, bucket, logger)
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.Kind)
	}
}

// newRawTable splits the first row off as the header and pads shorter
// records with empty cells so every record is as wide as the header.
func newRawTable(title string, rows [][]string) (RawTable, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return RawTable{}, fmt.Errorf("worksheet %q has no header row", title)
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make([]string, len(header))
		copy(rec, row)
		records = append(records, rec)
	}

	return RawTable{Title: title, Header: header, Records: records}, nil
}
