package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"machineshop/internal/database"
	"machineshop/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB("sqlite:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })
	require.NoError(t, database.InitSchema(db))
	return db
}

func createMachine(t *testing.T, db *gorm.DB, name string, quantity int) *model.Machine {
	t.Helper()
	m := &model.Machine{Name: name, Price: 100, Quantity: quantity}
	require.NoError(t, db.Create(m).Error)
	return m
}

func machineQuantity(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var m model.Machine
	require.NoError(t, db.First(&m, "id = ?", id).Error)
	return m.Quantity
}

func countRows(t *testing.T, db *gorm.DB, table any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(table).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}

type orderFixture struct {
	db      *gorm.DB
	clients *ClientService
	orders  *OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	clients := NewClientService(db)
	return &orderFixture{
		db:      db,
		clients: clients,
		orders:  NewOrderService(db, NewStockLedger(db), clients),
	}
}

func validOrder(machineID string, quantity float64) OrderInput {
	return OrderInput{
		ClientName:   "Asha Rao",
		MobileNumber: "9999999999",
		MachineID:    machineID,
		MachineName:  "Lathe",
		Quantity:     ptr(quantity),
		TotalPrice:   ptr(quantity * 100),
		Address:      "12 Mill Road",
	}
}

var ctx = context.Background()
