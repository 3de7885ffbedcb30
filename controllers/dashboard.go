package controllers

import (
	"net/http"
	"sort"
	"time"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
)

type dailyRevenuePoint struct {
	Date      string   `json:"date"`
	Realized  *float64 `json:"realized"`
	Projected *float64 `json:"projected"`
}

type popularService struct {
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// GetDashboard returns today's agenda stats, the next upcoming appointments,
// the current month's daily revenue series and the most booked services
// (?month=YYYY-MM for the series and ranking).
func GetDashboard(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	ref := now
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		ref = parsed
	}
	first, last := utils.MonthBounds(ref)

	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	var todayAppointments []models.Appointment
	if err := config.DB.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userUUID, dayStart, dayEnd).
		Order("start_time ASC").Find(&todayAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	todayRevenue := 0.0
	todayCompleted := 0
	todayRemaining := 0
	for _, a := range todayAppointments {
		switch a.Status {
		case models.StatusCompleted:
			todayCompleted++
			if a.FinalAmountPaid != nil {
				todayRevenue += *a.FinalAmountPaid
			}
		case models.StatusScheduled:
			if a.StartTime.After(now) {
				todayRemaining++
			}
		}
	}

	var upcoming []models.Appointment
	if err := config.DB.Where("user_id = ? AND status = ? AND start_time >= ?", userUUID, models.StatusScheduled, now).
		Order("start_time ASC").Limit(5).Find(&upcoming).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve upcoming appointments")
		return
	}

	var monthAppointments []models.Appointment
	if err := config.DB.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userUUID, first, last).
		Find(&monthAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	revenue := monthRevenueSeries(monthAppointments, first, last)
	popular := popularServices(monthAppointments)

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"total":     len(todayAppointments),
			"remaining": todayRemaining,
			"completed": todayCompleted,
			"revenue":   todayRevenue,
		},
		"upcoming":        upcoming,
		"revenueByDay":    revenue,
		"popularServices": popular,
	})
}

// monthRevenueSeries builds one point per day of the month. Realized revenue
// comes from completed appointments, projected from scheduled ones; days
// without either keep a null so charts can break the line.
func monthRevenueSeries(appointments []models.Appointment, first, last time.Time) []dailyRevenuePoint {
	realized := make(map[string]float64)
	projected := make(map[string]float64)

	for _, a := range appointments {
		key := a.StartTime.In(first.Location()).Format("2006-01-02")
		switch a.Status {
		case models.StatusCompleted:
			if a.FinalAmountPaid != nil {
				realized[key] += *a.FinalAmountPaid
			} else {
				realized[key] += a.TotalAmount
			}
		case models.StatusScheduled:
			projected[key] += a.TotalAmount
		}
	}

	var series []dailyRevenuePoint
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		point := dailyRevenuePoint{Date: key}
		if v, ok := realized[key]; ok {
			value := v
			point.Realized = &value
		}
		if v, ok := projected[key]; ok {
			value := v
			point.Projected = &value
		}
		series = append(series, point)
	}
	return series
}

// popularServices ranks services by completed bookings, counting every
// snapshot line.
func popularServices(appointments []models.Appointment) []popularService {
	counts := make(map[string]*popularService)
	for _, a := range appointments {
		if a.Status != models.StatusCompleted {
			continue
		}
		for _, s := range a.Services {
			entry, ok := counts[s.Name]
			if !ok {
				entry = &popularService{Name: s.Name}
				counts[s.Name] = entry
			}
			entry.Bookings++
			entry.Revenue += s.Price
		}
	}

	ranked := make([]popularService, 0, len(counts))
	for _, entry := range counts {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bookings != ranked[j].Bookings {
			return ranked[i].Bookings > ranked[j].Bookings
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked
}
