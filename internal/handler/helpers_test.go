package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"machineshop/internal/database"
	"machineshop/internal/model"
	"machineshop/internal/service"
)

type testApp struct {
	db      *gorm.DB
	router  http.Handler
	uploads string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	db, err := database.NewDB("sqlite:" + filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })
	require.NoError(t, database.InitSchema(db))

	clients := service.NewClientService(db)
	svc := Services{
		Auth:     service.NewAuthService(db),
		Clients:  clients,
		Machines: service.NewMachineService(db),
		Orders:   service.NewOrderService(db, service.NewStockLedger(db), clients),
		Tokens:   service.NewTokenIssuer("test-secret", time.Hour),
	}
	return &testApp{db: db, router: NewRouter(svc, dir), uploads: dir}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) machine(t *testing.T, name string, quantity int) *model.Machine {
	t.Helper()
	m := &model.Machine{Name: name, Price: 250, Quantity: quantity}
	require.NoError(t, a.db.Create(m).Error)
	return m
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Message   string `json:"message"`
	Field     string `json:"field"`
	Available *int   `json:"available"`
}
