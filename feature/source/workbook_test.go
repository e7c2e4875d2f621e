package source

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"sheet-sync/core/reconcile"
	"sheet-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// buildWorkbook creates a workbook with a Customers sheet, an Orders sheet
// and an empty Notes sheet.
func buildWorkbook(t *testing.T) *excelize.File {
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	require.NoError(t, f.SetSheetName("Sheet1", "Customers"))
	require.NoError(t, f.SetSheetRow("Customers", "A1", &[]any{"ID", "Name", "Email"}))
	require.NoError(t, f.SetSheetRow("Customers", "A2", &[]any{"A", "Alice", "alice@example.com"}))
	require.NoError(t, f.SetSheetRow("Customers", "A3", &[]any{"B", "Bob"}))

	_, err := f.NewSheet("Order Items")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Order Items", "A1", &[]any{"id", "customer_id"}))
	require.NoError(t, f.SetSheetRow("Order Items", "A2", &[]any{"O1", "A"}))

	_, err = f.NewSheet("Notes")
	require.NoError(t, err)

	return f
}

func TestWorkbookSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.xlsx")
	require.NoError(t, buildWorkbook(t).SaveAs(path))

	src, err := NewWorkbookSource(Config{WorkbookPath: path, SheetIndices: []int{0, 1, 2, 7}}, nil, "", zap.NewNop())
	require.NoError(t, err)

	tables, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2, "empty and missing worksheets are skipped")

	assert.Equal(t, "customers", tables[0].Name())
	assert.Equal(t, []string{"ID", "Name", "Email"}, tables[0].Header)
	assert.Equal(t, [][]string{
		{"A", "Alice", "alice@example.com"},
		{"B", "Bob", ""},
	}, tables[0].Records)

	assert.Equal(t, "order_items", tables[1].Name())
	assert.Len(t, tables[1].Records, 1)
}

func TestWorkbookSource_Object(t *testing.T) {
	buf, err := buildWorkbook(t).WriteToBuffer()
	require.NoError(t, err)

	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "sheets/sync.xlsx", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(buf.Bytes())), nil)

	src, err := NewWorkbookSource(Config{WorkbookObject: "sheets/sync.xlsx", SheetIndices: []int{1}}, mockClient, "test-bucket", zap.NewNop())
	require.NoError(t, err)

	tables, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "order_items", tables[0].Name())
	mockClient.AssertExpectations(t)
}

func TestWorkbookSource_OpenFailure(t *testing.T) {
	src, err := NewWorkbookSource(Config{WorkbookPath: filepath.Join(t.TempDir(), "missing.xlsx"), SheetIndices: []int{0}}, nil, "", zap.NewNop())
	require.NoError(t, err)

	_, err = src.Extract(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrConnectivity)
}

func TestNewWorkbookSource_Validation(t *testing.T) {
	_, err := NewWorkbookSource(Config{}, nil, "", zap.NewNop())
	assert.Error(t, err)

	_, err = NewWorkbookSource(Config{WorkbookObject: "sync.xlsx"}, nil, "bucket", zap.NewNop())
	assert.ErrorContains(t, err, "requires storage")
}
