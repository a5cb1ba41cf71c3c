package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Mobile       string    `gorm:"index;size:10;not null" json:"mobile"`
	Address      string    `gorm:"not null" json:"address"`
	Machine      int       `gorm:"not null;default:0" json:"machine"` // cumulative units ordered
	CreatedAt    time.Time `json:"createdAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// ClientSummary is the public projection returned by login and deletion.
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
