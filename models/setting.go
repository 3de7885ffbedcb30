package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAlertDays is the return-alert threshold applied before a user
// saves their own settings.
const DefaultAlertDays = 7

// UserSetting holds per-user preferences read at startup by the client:
// theme and the return-alert threshold consumed by the forecast.
type UserSetting struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Theme     string `gorm:"type:varchar(10);default:'system'"` // light, dark, system
	AlertDays int    `gorm:"default:7"`

	gorm.Model
}

func (s *UserSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
