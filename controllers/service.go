// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,min=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"min=0"`
	RecurrenceDays  *int    `json:"recurrenceDays"` // null = not recurring
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	RecurrenceDays  *int     `json:"recurrenceDays"`
	ClearRecurrence bool     `json:"clearRecurrence"`
	IsActive        *bool    `json:"isActive"`
}

// CreateService creates a new service
func CreateService(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.RecurrenceDays != nil && *input.RecurrenceDays <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Recurrence interval must be positive")
		return
	}

	service := models.Service{
		UserID:          userUUID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		RecurrenceDays:  input.RecurrenceDays,
		IsActive:        true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services, ordered by name
func GetServices(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("user_id = ?", userUUID).Order("name ASC").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service. Existing appointment snapshots
// are untouched; only future bookings see the change.
func UpdateService(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.ClearRecurrence {
		service.RecurrenceDays = nil
	} else if input.RecurrenceDays != nil {
		if *input.RecurrenceDays <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Recurrence interval must be positive")
			return
		}
		service.RecurrenceDays = input.RecurrenceDays
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a service
func DeleteService(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
