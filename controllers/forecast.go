package controllers

import (
	"net/http"
	"time"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/scheduling"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetForecast projects client returns over the next 30 days from recurring
// services and each client's most recent completed visit.
func GetForecast(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clients, services, completed, err := forecastData(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load forecast data")
		return
	}

	var setting models.UserSetting
	alertDays := models.DefaultAlertDays
	if err := config.DB.Where("user_id = ?", userUUID).First(&setting).Error; err == nil {
		alertDays = setting.AlertDays
	}

	forecast := scheduling.ComputeForecast(clients, services, completed, alertDays, scheduling.DefaultHorizonDays, time.Now())

	alertIDs := make([]uuid.UUID, 0, len(forecast.ClientsNeedingAlert))
	for id := range forecast.ClientsNeedingAlert {
		alertIDs = append(alertIDs, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"overdueCount":    forecast.OverdueCount,
		"overdueRevenue":  forecast.OverdueRevenue,
		"dailyForecast":   forecast.DailyForecast,
		"clientsToNotify": alertIDs,
	})
}

// forecastData loads everything the forecast needs for one user.
func forecastData(userUUID uuid.UUID) ([]models.Client, []models.Service, []models.Appointment, error) {
	var clients []models.Client
	if err := config.DB.Where("user_id = ?", userUUID).Find(&clients).Error; err != nil {
		return nil, nil, nil, err
	}

	var services []models.Service
	if err := config.DB.Where("user_id = ? AND is_active = ?", userUUID, true).Find(&services).Error; err != nil {
		return nil, nil, nil, err
	}

	var completed []models.Appointment
	if err := config.DB.Where("user_id = ? AND status = ?", userUUID, models.StatusCompleted).
		Find(&completed).Error; err != nil {
		return nil, nil, nil, err
	}

	return clients, services, completed, nil
}
