package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"machineshop/internal/model"
)

func TestMachineCRUD(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/machines", map[string]any{
		"name":        "Lathe",
		"price":       1200,
		"description": "bench lathe",
		"rating":      4,
		"quantity":    3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Machine](t, w)
	assert.Equal(t, "Lathe", created.Name)

	w = app.do(t, http.MethodPut, "/api/machines/"+created.ID, map[string]any{"quantity": 9, "price": 999.5})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[model.Machine](t, w)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, 999.5, updated.Price)
	assert.Equal(t, "bench lathe", updated.Description)

	w = app.do(t, http.MethodGet, "/api/machines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]model.Machine](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, 9, list[0].Quantity)

	w = app.do(t, http.MethodDelete, "/api/machines/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Machine deleted", decode[messageResponse](t, w).Message)

	w = app.do(t, http.MethodDelete, "/api/machines/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMachineErrors(t *testing.T) {
	app := newTestApp(t)
	m := app.machine(t, "Lathe", 1)

	w := app.do(t, http.MethodPost, "/api/machines", map[string]any{"name": "X", "price": 1, "quantity": 1, "rating": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "rating", decode[errorBody](t, w).Field)

	w = app.do(t, http.MethodPost, "/api/machines", map[string]any{"name": "X", "price": 1, "quantity": 1.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/machines/bad-id", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/machines/"+uuid.NewString(), map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPut, "/api/machines/"+m.ID, map[string]any{"price": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodDelete, "/api/machines/bad-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMachinesTwiceIsIdentical(t *testing.T) {
	app := newTestApp(t)
	app.machine(t, "Lathe", 1)
	app.machine(t, "Drill", 2)

	first := app.do(t, http.MethodGet, "/api/machines", nil)
	second := app.do(t, http.MethodGet, "/api/machines", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHealthAndUploads(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.uploads, "lathe.txt"), []byte("image-bytes"), 0o600))

	w := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/lathe.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
