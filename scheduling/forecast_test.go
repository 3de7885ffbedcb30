package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"axis-backend/models"
)

func intPtr(v int) *int { return &v }

func recurringService(name string, price float64, recurrenceDays int) models.Service {
	return models.Service{
		ID:             uuid.New(),
		Name:           name,
		Price:          price,
		RecurrenceDays: intPtr(recurrenceDays),
		IsActive:       true,
	}
}

func completedVisit(client models.Client, svc models.Service, start time.Time) models.Appointment {
	id := client.ID
	return models.Appointment{
		ID:         uuid.New(),
		ClientID:   &id,
		ClientName: client.Name,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     models.StatusCompleted,
		Services: models.ServiceSnapshots{
			{ServiceID: svc.ID, Name: svc.Name, Price: svc.Price, DurationMinutes: 60},
		},
	}
}

func TestComputeForecastUpcomingReturn(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Ana", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)

	// Last visit 15 days ago with a 21 day interval: due in 6 days.
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if f.OverdueCount != 0 {
		t.Fatalf("OverdueCount = %d, want 0", f.OverdueCount)
	}
	wantDate := "2025-03-21"
	var found *DailyForecast
	for i := range f.DailyForecast {
		if f.DailyForecast[i].Date == wantDate {
			found = &f.DailyForecast[i]
		}
	}
	if found == nil {
		t.Fatalf("no bucket for %s", wantDate)
	}
	if found.ClientsExpected != 1 || found.PotentialRevenue != 120 {
		t.Errorf("bucket %s = %d clients / %.2f, want 1 / 120.00", wantDate, found.ClientsExpected, found.PotentialRevenue)
	}
	if !f.ClientsNeedingAlert[client.ID] {
		t.Error("client due in 6 days with threshold 7 must need an alert")
	}
}

func TestComputeForecastOutsideAlertThreshold(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Bia", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)

	// Last visit 5 days ago: due in 16 days, beyond a threshold of 7.
	visit := completedVisit(client, svc, now.AddDate(0, 0, -5))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if f.ClientsNeedingAlert[client.ID] {
		t.Error("client due in 16 days must not need an alert at threshold 7")
	}
	sum := 0
	for _, d := range f.DailyForecast {
		sum += d.ClientsExpected
	}
	if sum != 1 {
		t.Errorf("expected exactly one bucketed return, got %d", sum)
	}
}

func TestComputeForecastOverdue(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Carla", AlertsEnabled: true}
	svc := recurringService("Hydration", 80, 21)

	// Last visit 30 days ago: 9 days overdue.
	visit := completedVisit(client, svc, now.AddDate(0, 0, -30))
	// The snapshot price differs; the overdue revenue uses the current price.
	visit.Services[0].Price = 60

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if f.OverdueCount != 1 {
		t.Fatalf("OverdueCount = %d, want 1", f.OverdueCount)
	}
	if f.OverdueRevenue != 80 {
		t.Errorf("OverdueRevenue = %.2f, want current price 80.00", f.OverdueRevenue)
	}
	if !f.ClientsNeedingAlert[client.ID] {
		t.Error("overdue client must need an alert")
	}
	for _, d := range f.DailyForecast {
		if d.ClientsExpected != 0 {
			t.Errorf("overdue return must not land in the daily series, found on %s", d.Date)
		}
	}
}

func TestComputeForecastUsesMostRecentVisit(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Duda", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)

	older := completedVisit(client, svc, now.AddDate(0, 0, -40))
	newer := completedVisit(client, svc, now.AddDate(0, 0, -15))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{older, newer}, 7, DefaultHorizonDays, now)

	if f.OverdueCount != 0 {
		t.Fatalf("older visit must be superseded, OverdueCount = %d", f.OverdueCount)
	}
	for _, d := range f.DailyForecast {
		if d.Date == "2025-03-21" && d.ClientsExpected != 1 {
			t.Errorf("bucket %s = %d clients, want 1", d.Date, d.ClientsExpected)
		}
	}
}

func TestComputeForecastAlertsDisabled(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Eva", AlertsEnabled: false}
	svc := recurringService("Color", 120, 21)
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if f.ClientsNeedingAlert[client.ID] {
		t.Error("client with alerts disabled must never need an alert")
	}
	sum := 0
	for _, d := range f.DailyForecast {
		sum += d.ClientsExpected
	}
	if sum != 1 {
		t.Errorf("disabled alerts must not remove the client from the series, got %d buckets filled", sum)
	}
}

func TestComputeForecastIgnoresNonRecurringServices(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Flor", AlertsEnabled: true}
	svc := models.Service{ID: uuid.New(), Name: "Cut", Price: 50, IsActive: true}
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if f.OverdueCount != 0 || len(f.ClientsNeedingAlert) != 0 {
		t.Error("services without a recurrence interval must not project returns")
	}
	for _, d := range f.DailyForecast {
		if d.ClientsExpected != 0 {
			t.Fatalf("unexpected projection on %s", d.Date)
		}
	}
}

func TestComputeForecastEmptyInputs(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Gabi", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	cases := []struct {
		name      string
		clients   []models.Client
		services  []models.Service
		completed []models.Appointment
	}{
		{"no clients", nil, []models.Service{svc}, []models.Appointment{visit}},
		{"no services", []models.Client{client}, nil, []models.Appointment{visit}},
		{"no history", []models.Client{client}, []models.Service{svc}, nil},
	}

	for _, tc := range cases {
		f := ComputeForecast(tc.clients, tc.services, tc.completed, 7, DefaultHorizonDays, now)
		if f.OverdueCount != 0 || f.OverdueRevenue != 0 || len(f.ClientsNeedingAlert) != 0 {
			t.Errorf("%s: expected a zero forecast", tc.name)
		}
		if len(f.DailyForecast) != 0 {
			t.Errorf("%s: expected an empty daily series, got %d", tc.name, len(f.DailyForecast))
		}
	}
}

func TestComputeForecastSeriesShape(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Helo", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	f := ComputeForecast([]models.Client{client}, []models.Service{svc},
		[]models.Appointment{visit}, 7, DefaultHorizonDays, now)

	if len(f.DailyForecast) != DefaultHorizonDays+1 {
		t.Fatalf("series length = %d, want %d", len(f.DailyForecast), DefaultHorizonDays+1)
	}
	if f.DailyForecast[0].Date != "2025-03-15" {
		t.Errorf("series must start today, got %s", f.DailyForecast[0].Date)
	}
	for i := 1; i < len(f.DailyForecast); i++ {
		if f.DailyForecast[i].Date <= f.DailyForecast[i-1].Date {
			t.Fatalf("series out of order at %d: %s after %s", i, f.DailyForecast[i].Date, f.DailyForecast[i-1].Date)
		}
	}
}

func TestComputeForecastIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	client := models.Client{ID: uuid.New(), Name: "Iris", AlertsEnabled: true}
	svc := recurringService("Color", 120, 21)
	visit := completedVisit(client, svc, now.AddDate(0, 0, -15))

	clients := []models.Client{client}
	services := []models.Service{svc}
	completed := []models.Appointment{visit}

	first := ComputeForecast(clients, services, completed, 7, DefaultHorizonDays, now)
	second := ComputeForecast(clients, services, completed, 7, DefaultHorizonDays, now)

	if first.OverdueCount != second.OverdueCount || first.OverdueRevenue != second.OverdueRevenue {
		t.Error("repeated runs over the same inputs must agree on overdue totals")
	}
	if len(first.DailyForecast) != len(second.DailyForecast) {
		t.Fatal("repeated runs must produce series of equal length")
	}
	for i := range first.DailyForecast {
		if first.DailyForecast[i] != second.DailyForecast[i] {
			t.Fatalf("series diverges at %d", i)
		}
	}
}
