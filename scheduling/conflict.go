package scheduling

import (
	"time"

	"github.com/google/uuid"

	"axis-backend/models"
)

// Working-day bounds of the agenda grid.
const (
	WorkStartHour = 8
	WorkEndHour   = 18
	SlotInterval  = 30 * time.Minute
)

// HasConflict returns the first existing appointment whose time span overlaps
// the candidate span [start, end) on the same calendar day. Cancelled
// appointments and the appointment identified by excludeID (the one being
// edited) are never conflict sources. Intervals are half-open: touching
// endpoints do not conflict. A zero-length candidate still occupies its
// start instant.
func HasConflict(existing []models.Appointment, start, end time.Time, excludeID uuid.UUID) *models.Appointment {
	for i := range existing {
		appt := &existing[i]
		if appt.Status == models.StatusCancelled {
			continue
		}
		if excludeID != uuid.Nil && appt.ID == excludeID {
			continue
		}
		if !sameDay(appt.StartTime, start) {
			continue
		}
		if spansOverlap(appt.StartTime, appt.EndTime, start, end) {
			return appt
		}
	}
	return nil
}

// Slot is one tick of the working-day grid. Occupancy is advisory, for
// display; HasConflict remains authoritative on save.
type Slot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

// GenerateSlots enumerates fixed-size ticks between workStart and workEnd on
// the given day. A tick is occupied when its instant falls within
// [StartTime, EndTime) of any non-excluded, non-cancelled appointment that
// day.
func GenerateSlots(day time.Time, interval time.Duration, workStart, workEnd int, existing []models.Appointment, excludeID uuid.UUID) []Slot {
	if interval <= 0 {
		interval = SlotInterval
	}
	gridStart := time.Date(day.Year(), day.Month(), day.Day(), workStart, 0, 0, 0, day.Location())
	gridEnd := time.Date(day.Year(), day.Month(), day.Day(), workEnd, 0, 0, 0, day.Location())

	slots := []Slot{}
	for tick := gridStart; tick.Before(gridEnd); tick = tick.Add(interval) {
		occupied := false
		for i := range existing {
			appt := &existing[i]
			if appt.Status == models.StatusCancelled {
				continue
			}
			if excludeID != uuid.Nil && appt.ID == excludeID {
				continue
			}
			if !sameDay(appt.StartTime, tick) {
				continue
			}
			if !tick.Before(appt.StartTime) && tick.Before(appt.EndTime) {
				occupied = true
				break
			}
		}
		slots = append(slots, Slot{Time: tick.Format("15:04"), Occupied: occupied})
	}
	return slots
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// spansOverlap applies the half-open interval test max(s1,s2) < min(e1,e2).
func spansOverlap(s1, e1, s2, e2 time.Time) bool {
	if !e2.After(s2) {
		// degenerate candidate: occupies exactly its start instant
		return !s2.Before(s1) && s2.Before(e1)
	}
	lo := s1
	if s2.After(lo) {
		lo = s2
	}
	hi := e1
	if e2.Before(hi) {
		hi = e2
	}
	return lo.Before(hi)
}
