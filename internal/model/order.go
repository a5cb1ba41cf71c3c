package model

import (
	"time"

	"gorm.io/gorm"
)

// Order is a historical snapshot. MachineName, ClientName and MobileNumber are
// copied at placement time and never recomputed.
type Order struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ClientName   string    `gorm:"index;not null" json:"clientName"`
	ClientKey    string    `gorm:"index;not null;default:''" json:"-"` // Fold(ClientName), for name search
	MobileNumber string    `gorm:"index;size:10;not null" json:"mobileNumber"`
	MachineID    string    `gorm:"type:varchar(36);index;not null" json:"machineId"`
	MachineName  string    `gorm:"not null" json:"machineName"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	TotalPrice   float64   `gorm:"not null" json:"totalPrice"`
	Address      string    `gorm:"not null" json:"address"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`

	// Machine is filled on read from the current machine row; nil once the
	// machine has been deleted.
	Machine *MachineRef `gorm:"-" json:"machine"`
}

// MachineRef is the part of a machine shown alongside its orders.
type MachineRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = newID()
	}
	o.ClientKey = Fold(o.ClientName)
	return nil
}
