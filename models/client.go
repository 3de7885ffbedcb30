package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string
	Email string
	Notes string

	// Whether this client participates in return-alert computation
	AlertsEnabled bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
