package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	s, err := NewSchema([]Column{
		{Name: "id", Kind: KindString},
		{Name: "name", Kind: KindString},
		{Name: "signup_date", Kind: KindDate},
	})
	require.NoError(t, err)
	return s
}

func TestNewSchema(t *testing.T) {
	t.Run("Duplicate", func(t *testing.T) {
		_, err := NewSchema([]Column{{Name: "id"}, {Name: "id"}})
		assert.Error(t, err)
	})

	t.Run("Empty name", func(t *testing.T) {
		_, err := NewSchema([]Column{{Name: "id"}, {Name: "  "}})
		assert.Error(t, err)
	})

	t.Run("Lookup", func(t *testing.T) {
		s := testSchema(t)
		i, ok := s.Index("signup_date")
		assert.True(t, ok)
		assert.Equal(t, 2, i)
		assert.Equal(t, []string{"id", "name", "signup_date"}, s.Names())
		assert.False(t, s.Has("missing"))
	})
}

func TestTable_Append(t *testing.T) {
	tbl := NewTable("customers", testSchema(t))
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, tbl.Append([]any{"A", "Alice", date}))
	require.NoError(t, tbl.Append([]any{"B", nil, nil}))

	assert.Error(t, tbl.Append([]any{"C", "Carol"}), "wrong width")
	assert.Error(t, tbl.Append([]any{"C", "Carol", "2024-03-01"}), "string in date column")
	assert.Error(t, tbl.Append([]any{1, "Carol", nil}), "int in string column")
	assert.Equal(t, 2, tbl.Len())

	v, ok := tbl.Get(tbl.Rows[0], "signup_date")
	assert.True(t, ok)
	assert.Equal(t, date, v)
}

func TestTable_ID(t *testing.T) {
	tbl := NewTable("customers", testSchema(t))
	require.NoError(t, tbl.Append([]any{" A ", "Alice", nil}))
	require.NoError(t, tbl.Append([]any{"   ", "Blank", nil}))
	require.NoError(t, tbl.Append([]any{nil, "Null", nil}))

	id, ok := tbl.ID(tbl.Rows[0], "id")
	assert.True(t, ok)
	assert.Equal(t, "A", id)

	_, ok = tbl.ID(tbl.Rows[1], "id")
	assert.False(t, ok)
	_, ok = tbl.ID(tbl.Rows[2], "id")
	assert.False(t, ok)
	_, ok = tbl.ID(tbl.Rows[0], "uuid")
	assert.False(t, ok)
}

func TestTable_WithColumn(t *testing.T) {
	tbl := NewTable("customers", testSchema(t))
	require.NoError(t, tbl.Append([]any{"A", "Alice", nil}))

	out, err := tbl.WithColumn(Column{Name: "is_deleted", Kind: KindBool}, false)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Schema.Len())
	assert.Equal(t, 3, tbl.Schema.Len(), "original schema is untouched")

	recs := out.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, false, recs[0]["is_deleted"])
	assert.Equal(t, "Alice", recs[0]["name"])

	same, err := out.WithColumn(Column{Name: "is_deleted", Kind: KindBool}, false)
	require.NoError(t, err)
	assert.Same(t, out, same)

	_, err = tbl.WithColumn(Column{Name: "flag", Kind: KindBool}, "no")
	assert.Error(t, err)
}
