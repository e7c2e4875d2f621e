package destination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema(t *testing.T) {
	db := setupTestDB(t, "check_schema")
	require.NoError(t, db.Exec(`CREATE TABLE notes (id TEXT PRIMARY KEY, body TEXT)`).Error)
	store := NewStore(db, Options{})

	report := store.CheckSchema(context.Background(), []string{"customers", "notes", "orders"})

	assert.False(t, report.Matched)
	assert.Empty(t, report.Errors)

	customers := report.Tables["customers"]
	assert.True(t, customers.Exists)
	assert.Equal(t, "ok", customers.Status)
	assert.Empty(t, customers.MissingColumns)
	assert.Equal(t, map[string]string{
		"id":          "text",
		"name":        "text",
		"email":       "text",
		"signup_date": "date",
		"is_deleted":  "boolean",
	}, customers.Columns)

	notes := report.Tables["notes"]
	assert.Equal(t, []string{"is_deleted"}, notes.MissingColumns)
	assert.Equal(t, "error", notes.Status)
	assert.Equal(t, map[string]string{"id": "text", "body": "text"}, notes.Columns)
	assert.Equal(t, "missing", report.Tables["orders"].Status)
	assert.False(t, report.Tables["orders"].Exists)
}

func TestCheckSchema_AllMatched(t *testing.T) {
	db := setupTestDB(t, "check_schema_ok")
	store := NewStore(db, Options{})

	report := store.CheckSchema(context.Background(), []string{"customers"})
	assert.True(t, report.Matched)
}
