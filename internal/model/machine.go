package model

import (
	"time"

	"gorm.io/gorm"
)

type Machine struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Image       string    `gorm:"type:text" json:"image"` // base64 payload or /uploads path
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
