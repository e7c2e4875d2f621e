package pipeline

import (
	"net/http/httptest"
	"testing"

	"sheet-sync/core/database"
	"sheet-sync/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeature(t *testing.T) {
	svc, _ := newTestService(t, "feature_load", &staticSource{tables: customerSheets()})
	f := NewFeature(svc)

	assert.Equal(t, "sync", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(f)
	loaded, err := mgr.LoadAll(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"sync"}, loaded)

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/last", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeature_DisabledWithoutLoadOrder(t *testing.T) {
	f := NewFeature(NewService(Config{}, database.Config{}, &staticSource{}, nil, "", zap.NewNop()))
	assert.False(t, f.IsEnabled())
}
