package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ServiceSnapshot is a copy of a service taken at booking time. The snapshot
// is immutable after creation; edits replace the whole list. Duration may
// diverge from the service's canonical duration when adjusted per booking.
type ServiceSnapshot struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
}

// ServiceSnapshots is stored as a jsonb column
type ServiceSnapshots []ServiceSnapshot

func (s ServiceSnapshots) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ServiceSnapshots) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

type Appointment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	// ClientID is null when the booking was made with a free-text name
	// that has not been linked to a client record yet.
	ClientID   *uuid.UUID `gorm:"type:uuid;index"`
	ClientName string     `gorm:"not null"`

	StartTime time.Time `gorm:"index;not null"`
	EndTime   time.Time `gorm:"not null"`

	Services    ServiceSnapshots `gorm:"type:jsonb;not null"`
	TotalAmount float64          `gorm:"type:decimal(10,2);not null"`

	AdvanceAmount    float64 `gorm:"type:decimal(10,2);default:0.0"`
	AdvanceConfirmed bool    `gorm:"default:false"`
	AdvanceMethod    string

	Status AppointmentStatus `gorm:"type:varchar(20);default:'scheduled'"`
	Notes  string

	FinalAmountPaid *float64 `gorm:"type:decimal(10,2)"`
	PaymentMethod   string

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
