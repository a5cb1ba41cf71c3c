package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"machineshop/internal/model"
)

func TestNewDBSQLiteAndSchema(t *testing.T) {
	db, err := NewDB("sqlite:" + filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })

	require.NoError(t, InitSchema(db))
	// idempotent
	require.NoError(t, InitSchema(db))

	for _, table := range []any{&model.Client{}, &model.Machine{}, &model.Order{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestUniqueEmailTranslatesToDuplicatedKey(t *testing.T) {
	db, err := NewDB("sqlite:" + filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	require.NoError(t, InitSchema(db))

	first := model.Client{Name: "A", Email: "a@x.com", PasswordHash: "h", Mobile: "9999999999", Address: "here"}
	require.NoError(t, db.Create(&first).Error)
	assert.Len(t, first.ID, 36)

	dup := model.Client{Name: "B", Email: "a@x.com", PasswordHash: "h", Mobile: "8888888888", Address: "there"}
	err = db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestInitSchemaBackfillsClientKey(t *testing.T) {
	db, err := NewDB("sqlite:" + filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	require.NoError(t, InitSchema(db))

	o := model.Order{ClientName: "Émile Zola", MobileNumber: "9999999999", MachineID: "m", MachineName: "Lathe", Quantity: 1, Address: "here"}
	require.NoError(t, db.Create(&o).Error)
	assert.Equal(t, "émile zola", o.ClientKey)

	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", o.ID).UpdateColumn("client_key", "").Error)
	require.NoError(t, InitSchema(db))

	var got model.Order
	require.NoError(t, db.First(&got, "id = ?", o.ID).Error)
	assert.Equal(t, "émile zola", got.ClientKey)
}

func TestNewDBBadPostgresURI(t *testing.T) {
	_, err := NewDB("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
}
