package normalize

import (
	"testing"
	"time"

	"sheet-sync/core/dataset"
	"sheet-sync/feature/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ID", "id"},
		{" Signup Date ", "signup_date"},
		{"Customer's Name", "customers_name"},
		{"is_deleted", "is_deleted"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanHeader(tt.input))
		})
	}
}

func TestKindOf(t *testing.T) {
	n := New(Options{DeletedColumn: "archived"}, zap.NewNop())

	assert.Equal(t, dataset.KindBool, n.kindOf("archived"))
	assert.Equal(t, dataset.KindBool, n.kindOf("is_active"))
	assert.Equal(t, dataset.KindBool, n.kindOf("has_invoice"))
	assert.Equal(t, dataset.KindDate, n.kindOf("signup_date"))
	assert.Equal(t, dataset.KindDate, n.kindOf("date"))
	assert.Equal(t, dataset.KindString, n.kindOf("customer_id"))
	assert.Equal(t, dataset.KindString, n.kindOf("name"))
}

func TestTable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := New(Options{}, zap.New(core))

	raw := source.RawTable{
		Title:  "Customers",
		Header: []string{"ID", "Name", "Signup Date", "Is Active", ""},
		Records: [][]string{
			{" A ", "Alice", "2024-01-15", "TRUE", "note"},
			{"B", "  ", "not a date", "0", ""},
			{"", "", "", "", ""},
			{"", "Ghost", "", "", ""},
			{"A", "Alicia", "1/20/2024", "no", ""},
			{"C", "Carol", "", "maybe", ""},
		},
	}

	table, report, err := n.Table(raw)
	require.NoError(t, err)

	assert.Equal(t, "customers", table.Name)
	assert.Equal(t, []string{"id", "name", "signup_date", "is_active"}, table.Schema.Names())
	assert.Equal(t, Report{Table: "customers", Rows: 3, Empty: 1, Rejected: 1, Duplicates: 1}, report)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []any{"B", nil, nil, false}, table.Rows[0].Values())
	assert.Equal(t, []any{"A", "Alicia", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false}, table.Rows[1].Values())
	assert.Equal(t, []any{"C", "Carol", nil, nil}, table.Rows[2].Values())

	assert.Equal(t, 1, logs.FilterMessage("Dropped rows without identifier").Len())
	assert.Equal(t, 1, logs.FilterMessage("Collapsed duplicate identifiers, last row wins").Len())
	assert.Equal(t, 1, logs.FilterMessage("Ignoring columns without a header").Len())
}

func TestTable_HeaderOnly(t *testing.T) {
	n := New(Options{}, zap.NewNop())

	table, report, err := n.Table(source.RawTable{Title: "Invoices", Header: []string{"id", "amount"}})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.True(t, table.Schema.Has("id"))
	assert.Equal(t, 0, report.Rows)
}

func TestTable_WithoutIDColumn(t *testing.T) {
	n := New(Options{}, zap.NewNop())

	table, report, err := n.Table(source.RawTable{
		Title:   "Notes",
		Header:  []string{"title", "body"},
		Records: [][]string{{"a", "b"}, {"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Zero(t, report.Rejected)
	assert.Zero(t, report.Duplicates)
}

func TestTable_CustomIDColumnIsTrimmed(t *testing.T) {
	n := New(Options{IDColumn: "code"}, zap.NewNop())

	table, _, err := n.Table(source.RawTable{
		Title:   "Products",
		Header:  []string{"Code", "Label"},
		Records: [][]string{{" P1 ", " Widget "}},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"P1", " Widget "}, table.Rows[0].Values())
}

func TestAll_SkipsFailingWorksheet(t *testing.T) {
	n := New(Options{}, zap.NewNop())

	tables := n.All([]source.RawTable{
		{Title: "Orders", Header: []string{"id", "Id"}, Records: [][]string{{"1", "2"}}},
		{Title: "Invoices", Header: []string{"id", "total"}, Records: [][]string{{"I1", "10"}}},
		{Title: "invoices", Header: []string{"id"}, Records: [][]string{{"I9"}}},
	})

	require.Len(t, tables, 1)
	require.Contains(t, tables, "invoices")
	assert.Equal(t, 1, tables["invoices"].Len())
	assert.Equal(t, "I1", tables["invoices"].Rows[0].Value(0))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{
		"2024-03-05",
		"2024-03-05 13:45:00",
		"2024-03-05T13:45:00Z",
		"2024/03/05",
		"3/5/2024",
		"Mar 5, 2024",
		"5 March 2024",
	} {
		t.Run(input, func(t *testing.T) {
			got, ok := parseDate(input)
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}

	_, ok := parseDate("next tuesday")
	assert.False(t, ok)
}

func TestParseBool(t *testing.T) {
	for input, want := range map[string]bool{"TRUE": true, "1": true, "yes": true, "false": false, "0": false, "N": false} {
		got, ok := parseBool(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := parseBool("perhaps")
	assert.False(t, ok)
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(0))
	assert.Equal(t, "Z", columnLetter(25))
	assert.Equal(t, "AA", columnLetter(26))
}
