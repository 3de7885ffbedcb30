package scheduling

import (
	"math"
	"time"

	"github.com/google/uuid"

	"axis-backend/models"
	"axis-backend/utils"
)

// DefaultHorizonDays is the rolling window of the daily forecast series.
const DefaultHorizonDays = 30

// DailyForecast is one day's bucket of expected returning clients.
type DailyForecast struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	ClientsExpected  int     `json:"clientsExpected"`
	PotentialRevenue float64 `json:"potentialRevenue"`
}

type Forecast struct {
	ClientsNeedingAlert map[uuid.UUID]bool
	OverdueCount        int
	OverdueRevenue      float64
	DailyForecast       []DailyForecast
}

// ComputeForecast projects client returns from service recurrence intervals.
//
// For every client and every service with a positive recurrence interval, the
// client's most recent completed appointment containing that service sets the
// predicted return date (last visit + interval, normalized to midnight in
// now's location). Earlier appointments for the same pair are ignored.
// Pairs already past their return date count toward the overdue totals at the
// service's current price; pairs due within horizonDays are bucketed into the
// daily series. A client lands in ClientsNeedingAlert when alerts are enabled
// and any of its pairs is due within alertThresholdDays (overdue included).
//
// Empty inputs produce a zero-valued forecast, never an error.
func ComputeForecast(clients []models.Client, services []models.Service, completed []models.Appointment, alertThresholdDays, horizonDays int, now time.Time) Forecast {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := utils.BeginningOfDay(now)

	forecast := Forecast{
		ClientsNeedingAlert: make(map[uuid.UUID]bool),
		DailyForecast:       []DailyForecast{},
	}
	if len(clients) == 0 || len(services) == 0 || len(completed) == 0 {
		return forecast
	}

	type bucket struct {
		clients int
		revenue float64
	}
	// Pre-initialized buckets for today..today+horizon, in chronological
	// order. Keys outside the window are dropped, not grown.
	days := make([]string, 0, horizonDays+1)
	buckets := make(map[string]*bucket, horizonDays+1)
	for i := 0; i <= horizonDays; i++ {
		key := today.AddDate(0, 0, i).Format("2006-01-02")
		days = append(days, key)
		buckets[key] = &bucket{}
	}

	recurring := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if svc.RecurrenceDays != nil && *svc.RecurrenceDays > 0 {
			recurring = append(recurring, svc)
		}
	}

	for _, client := range clients {
		needsAlert := false

		for _, svc := range recurring {
			last := latestVisit(completed, client.ID, svc.ID)
			if last == nil {
				continue
			}

			lastVisit := utils.BeginningOfDay(last.StartTime.In(today.Location()))
			returnDate := lastVisit.AddDate(0, 0, *svc.RecurrenceDays)
			daysUntilReturn := int(math.Ceil(returnDate.Sub(today).Hours() / 24))

			if daysUntilReturn < 0 {
				forecast.OverdueCount++
				forecast.OverdueRevenue += svc.Price
			}
			if daysUntilReturn >= 0 && daysUntilReturn <= horizonDays {
				if b, ok := buckets[returnDate.Format("2006-01-02")]; ok {
					b.clients++
					b.revenue += svc.Price
				}
			}
			if client.AlertsEnabled && daysUntilReturn <= alertThresholdDays {
				needsAlert = true
			}
		}

		if needsAlert {
			forecast.ClientsNeedingAlert[client.ID] = true
		}
	}

	for _, key := range days {
		b := buckets[key]
		forecast.DailyForecast = append(forecast.DailyForecast, DailyForecast{
			Date:             key,
			ClientsExpected:  b.clients,
			PotentialRevenue: b.revenue,
		})
	}
	return forecast
}

// latestVisit finds the client's most recent completed appointment that
// contains the given service in its snapshot.
func latestVisit(completed []models.Appointment, clientID, serviceID uuid.UUID) *models.Appointment {
	var last *models.Appointment
	for i := range completed {
		appt := &completed[i]
		if appt.ClientID == nil || *appt.ClientID != clientID {
			continue
		}
		if !snapshotContains(appt.Services, serviceID) {
			continue
		}
		if last == nil || appt.StartTime.After(last.StartTime) {
			last = appt
		}
	}
	return last
}

func snapshotContains(snapshots models.ServiceSnapshots, serviceID uuid.UUID) bool {
	for _, s := range snapshots {
		if s.ServiceID == serviceID {
			return true
		}
	}
	return false
}
