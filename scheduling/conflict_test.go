package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"axis-backend/models"
)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func appt(day time.Time, startHour, startMin, endHour, endMin int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		ID:         uuid.New(),
		ClientName: "Test Client",
		StartTime:  at(day, startHour, startMin),
		EndTime:    at(day, endHour, endMin),
		Status:     status,
	}
}

func TestHasConflictOverlap(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusScheduled),
	}

	if got := HasConflict(existing, at(day, 10, 30), at(day, 11, 30), uuid.Nil); got == nil {
		t.Fatal("expected conflict for overlapping span, got nil")
	}
	if got := HasConflict(existing, at(day, 9, 0), at(day, 10, 30), uuid.Nil); got == nil {
		t.Fatal("expected conflict for span covering the start, got nil")
	}
	if got := HasConflict(existing, at(day, 9, 0), at(day, 12, 0), uuid.Nil); got == nil {
		t.Fatal("expected conflict for enclosing span, got nil")
	}
}

func TestHasConflictTouchingEndpoints(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusScheduled),
	}

	if got := HasConflict(existing, at(day, 11, 0), at(day, 12, 0), uuid.Nil); got != nil {
		t.Fatalf("back-to-back spans must not conflict, got %v", got.StartTime)
	}
	if got := HasConflict(existing, at(day, 9, 0), at(day, 10, 0), uuid.Nil); got != nil {
		t.Fatalf("span ending at the start must not conflict, got %v", got.StartTime)
	}
}

func TestHasConflictDifferentDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusScheduled),
	}

	if got := HasConflict(existing, at(nextDay, 10, 0), at(nextDay, 11, 0), uuid.Nil); got != nil {
		t.Fatal("appointments on another day must not conflict")
	}
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusCancelled),
	}

	if got := HasConflict(existing, at(day, 10, 0), at(day, 11, 0), uuid.Nil); got != nil {
		t.Fatal("cancelled appointments must not be conflict sources")
	}
}

func TestHasConflictExcludesEdited(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	edited := appt(day, 10, 0, 11, 0, models.StatusScheduled)
	other := appt(day, 14, 0, 15, 0, models.StatusScheduled)
	existing := []models.Appointment{edited, other}

	if got := HasConflict(existing, at(day, 10, 0), at(day, 11, 0), edited.ID); got != nil {
		t.Fatal("the appointment being edited must not conflict with itself")
	}
	got := HasConflict(existing, at(day, 14, 30), at(day, 15, 30), edited.ID)
	if got == nil {
		t.Fatal("expected conflict with the other appointment")
	}
	if got.ID != other.ID {
		t.Fatalf("wrong conflict source: got %s, want %s", got.ID, other.ID)
	}
}

func TestHasConflictZeroLengthCandidate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusScheduled),
	}

	instant := at(day, 10, 30)
	if got := HasConflict(existing, instant, instant, uuid.Nil); got == nil {
		t.Fatal("zero-length candidate inside a booking must conflict")
	}
	free := at(day, 12, 0)
	if got := HasConflict(existing, free, free, uuid.Nil); got != nil {
		t.Fatal("zero-length candidate in free time must not conflict")
	}
	edge := at(day, 11, 0)
	if got := HasConflict(existing, edge, edge, uuid.Nil); got != nil {
		t.Fatal("zero-length candidate at the end instant must not conflict")
	}
}

func TestGenerateSlotsGrid(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(day, SlotInterval, WorkStartHour, WorkEndHour, nil, uuid.Nil)
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots for a 8:00-18:00 day at 30min, got %d", len(slots))
	}
	if slots[0].Time != "08:00" {
		t.Errorf("first slot = %q, want 08:00", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "17:30" {
		t.Errorf("last slot = %q, want 17:30", slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		if s.Occupied {
			t.Fatalf("slot %s occupied on an empty day", s.Time)
		}
	}
}

func TestGenerateSlotsOccupancy(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 10, 0, 11, 0, models.StatusScheduled),
	}

	slots := GenerateSlots(day, SlotInterval, WorkStartHour, WorkEndHour, existing, uuid.Nil)

	occupied := map[string]bool{}
	for _, s := range slots {
		occupied[s.Time] = s.Occupied
	}
	if !occupied["10:00"] || !occupied["10:30"] {
		t.Error("slots within the booking must be occupied")
	}
	if occupied["09:30"] {
		t.Error("slot before the booking must be free")
	}
	if occupied["11:00"] {
		t.Error("slot at the booking's end must be free")
	}
}

func TestGenerateSlotsExcludeAndCancelled(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	edited := appt(day, 10, 0, 11, 0, models.StatusScheduled)
	cancelled := appt(day, 14, 0, 15, 0, models.StatusCancelled)
	existing := []models.Appointment{edited, cancelled}

	slots := GenerateSlots(day, SlotInterval, WorkStartHour, WorkEndHour, existing, edited.ID)
	for _, s := range slots {
		if s.Occupied {
			t.Fatalf("slot %s occupied, but its booking is excluded or cancelled", s.Time)
		}
	}
}

func TestGenerateSlotsConsistentWithConflict(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := []models.Appointment{
		appt(day, 9, 0, 9, 45, models.StatusScheduled),
		appt(day, 13, 30, 15, 0, models.StatusScheduled),
	}

	slots := GenerateSlots(day, SlotInterval, WorkStartHour, WorkEndHour, existing, uuid.Nil)
	for _, s := range slots {
		tick, err := time.ParseInLocation("15:04", s.Time, day.Location())
		if err != nil {
			t.Fatalf("unparseable slot time %q: %v", s.Time, err)
		}
		instant := at(day, tick.Hour(), tick.Minute())
		conflicts := HasConflict(existing, instant, instant, uuid.Nil) != nil
		if conflicts != s.Occupied {
			t.Errorf("slot %s: occupied=%v but zero-length conflict=%v", s.Time, s.Occupied, conflicts)
		}
	}
}
