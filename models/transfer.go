package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transfer moves money from the cash drawer to the bank account.
type Transfer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Amount float64   `gorm:"type:decimal(10,2);not null"`
	Date   time.Time `gorm:"index;not null"`

	gorm.Model
}

func (t *Transfer) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
