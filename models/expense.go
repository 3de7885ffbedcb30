package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Description string    `gorm:"not null"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	Date        time.Time `gorm:"index;not null"` // day granularity

	Paid          bool `gorm:"default:false"`
	PaymentMethod string

	// Recurring expenses act as templates: they are re-created, unpaid,
	// in every month after their original date.
	Recurring bool `gorm:"default:false"`

	gorm.Model
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
