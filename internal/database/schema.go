package database

import (
	"fmt"

	"gorm.io/gorm"

	"machineshop/internal/model"
)

func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Client{}, &model.Machine{}, &model.Order{}); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	if err := backfillClientKeys(db); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// backfillClientKeys folds the client name of orders stored before the
// client_key column existed.
func backfillClientKeys(db *gorm.DB) error {
	var orders []model.Order
	err := db.Select("id", "client_name").
		Where("client_key = '' AND client_name <> ''").
		Find(&orders).Error
	if err != nil {
		return fmt.Errorf("query orders without client key: %w", err)
	}
	for _, o := range orders {
		err := db.Model(&model.Order{}).Where("id = ?", o.ID).
			UpdateColumn("client_key", model.Fold(o.ClientName)).Error
		if err != nil {
			return fmt.Errorf("backfill client key: %w", err)
		}
	}
	return nil
}
