package source

import (
	"bytes"
	"context"
	"fmt"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WorkbookSource reads worksheets from an .xlsx workbook on disk or in the
// storage bucket.
type WorkbookSource struct {
	path    string
	object  string
	client  storage.Client
	bucket  string
	indices []int
	logger  *zap.Logger
}

// NewWorkbookSource validates the workbook location.
func NewWorkbookSource(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (*WorkbookSource, error) {
	if cfg.WorkbookObject == "" && cfg.WorkbookPath == "" {
		return nil, fmt.Errorf("workbook path or object is required")
	}
	if cfg.WorkbookObject != "" && client == nil {
		return nil, fmt.Errorf("workbook object %s requires storage to be configured", cfg.WorkbookObject)
	}
	return &WorkbookSource{
		path:    cfg.WorkbookPath,
		object:  cfg.WorkbookObject,
		client:  client,
		bucket:  bucket,
		indices: cfg.SheetIndices,
		logger:  logger,
	}, nil
}

// Extract implements Source.
func (w *WorkbookSource) Extract(ctx context.Context) ([]RawTable, error) {
	f, err := w.open(ctx)
	if err != nil {
		w.logger.Error("Failed to open workbook", zap.String("location", w.location()), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to open workbook %s: %w", reconcile.ErrConnectivity, w.location(), err)
	}
	defer f.Close()
	w.logger.Info("Opened workbook", zap.String("location", w.location()))

	list := f.GetSheetList()
	tables := make([]RawTable, 0, len(w.indices))
	for _, index := range w.indices {
		if index < 0 || index >= len(list) {
			w.logger.Error("Worksheet index out of range", zap.Int("index", index), zap.Int("sheets", len(list)))
			continue
		}
		title := list[index]

		rows, err := f.GetRows(title)
		if err == nil {
			var table RawTable
			if table, err = newRawTable(title, rows); err == nil {
				w.logger.Info("Extracted worksheet", zap.String("title", title), zap.Int("rows", len(table.Records)))
				tables = append(tables, table)
				continue
			}
		}
		w.logger.Error("Error extracting worksheet", zap.Int("index", index), zap.String("title", title), zap.Error(err))
	}

	return tables, nil
}

func (w *WorkbookSource) open(ctx context.Context) (*excelize.File, error) {
	if w.object == "" {
		return excelize.OpenFile(w.path)
	}
	data, err := storage.ReadObject(ctx, w.client, w.bucket, w.object)
	if err != nil {
		return nil, err
	}
	return excelize.OpenReader(bytes.NewReader(data))
}

func (w *WorkbookSource) location() string {
	if w.object != "" {
		return w.bucket + "/" + w.object
	}
	return w.path
}
