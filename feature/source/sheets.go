package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/utils"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads worksheets through the Google Sheets API.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	indices       []int
	maxRetries    int
	maxBackoff    time.Duration
	logger        *zap.Logger
	sleep         func(time.Duration)
}

// NewSheetsSource authenticates with the service account key at
// cfg.CredentialsPath.
func NewSheetsSource(ctx context.Context, cfg Config, logger *zap.Logger) (*SheetsSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create Sheets client: %w", reconcile.ErrConnectivity, err)
	}
	return newSheetsSource(srv, cfg, logger), nil
}

func newSheetsSource(srv *sheets.Service, cfg Config, logger *zap.Logger) *SheetsSource {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	backoff := cfg.MaxBackoffSeconds
	if backoff <= 0 {
		backoff = 60
	}
	return &SheetsSource{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
		indices:       cfg.SheetIndices,
		maxRetries:    retries,
		maxBackoff:    time.Duration(backoff) * time.Second,
		logger:        logger,
		sleep:         time.Sleep,
	}
}

// Extract implements Source.
func (s *SheetsSource) Extract(ctx context.Context) ([]RawTable, error) {
	var ss *sheets.Spreadsheet
	err := s.withBackoff(ctx, func() error {
		var err error
		ss, err = s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
		return err
	})
	if err != nil {
		s.logger.Error("Failed to connect to spreadsheet", zap.String("spreadsheet", s.spreadsheetID), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to open spreadsheet %s: %w", reconcile.ErrConnectivity, s.spreadsheetID, err)
	}
	s.logger.Info("Connected to spreadsheet", zap.String("spreadsheet", s.spreadsheetID), zap.Int("sheets", len(ss.Sheets)))

	tables := make([]RawTable, 0, len(s.indices))
	for _, index := range s.indices {
		if index < 0 || index >= len(ss.Sheets) {
			s.logger.Error("Worksheet index out of range", zap.Int("index", index), zap.Int("sheets", len(ss.Sheets)))
			continue
		}
		props := ss.Sheets[index].Properties
		if props == nil {
			s.logger.Error("Worksheet has no properties", zap.Int("index", index))
			continue
		}
		title := props.Title

		table, err := s.readSheet(ctx, title)
		if err != nil {
			s.logger.Error("Error extracting worksheet", zap.Int("index", index), zap.String("title", title), zap.Error(err))
			continue
		}
		s.logger.Info("Extracted worksheet", zap.String("title", title), zap.Int("rows", len(table.Records)))
		tables = append(tables, table)
	}

	return tables, nil
}

func (s *SheetsSource) readSheet(ctx context.Context, title string) (RawTable, error) {
	var resp *sheets.ValueRange
	err := s.withBackoff(ctx, func() error {
		var err error
		resp, err = s.service.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(title)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return RawTable{}, err
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = utils.ToString(cell)
		}
		rows[i] = cells
	}
	return newRawTable(title, rows)
}

// withBackoff retries fn while the API answers 429 or 403 (quota), doubling
// the wait each attempt up to maxBackoff.
func (s *SheetsSource) withBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		var gErr *googleapi.Error
		if !errors.As(err, &gErr) || (gErr.Code != http.StatusTooManyRequests && gErr.Code != http.StatusForbidden) {
			return err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
		s.logger.Warn("Rate limited by Google Sheets API, retrying", zap.Duration("backoff", backoff), zap.Int("attempt", attempt+1))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.sleep(backoff)
	}
	return fmt.Errorf("giving up after %d attempts: %w", s.maxRetries, err)
}

// quoteSheet turns a worksheet title into an A1 range covering the whole sheet.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
