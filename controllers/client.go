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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	Notes         string  `json:"notes"`
	AlertsEnabled *bool   `json:"alertsEnabled"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
	AlertsEnabled *bool   `json:"alertsEnabled"`
}

// CreateClient creates a new client
func CreateClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          input.Name,
		Phone:         input.Phone,
		Notes:         input.Notes,
		AlertsEnabled: true,
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.AlertsEnabled != nil {
		client.AlertsEnabled = *input.AlertsEnabled
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients, ordered by name
func GetClients(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("user_id = ?", userUUID).Order("name ASC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client with its appointment history
func GetClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Visit history, newest first, with the service-name snapshots
	var history []models.Appointment
	if err := config.DB.Where("user_id = ? AND client_id = ?", userUUID, clientUUID).
		Order("start_time DESC").Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointment history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": history,
	})
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.AlertsEnabled != nil {
		client.AlertsEnabled = *input.AlertsEnabled
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client. Appointments keep their free-text client
// name but lose the link.
func DeleteClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND client_id = ?", userUUID, clientUUID).
		Update("client_id", nil).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unlink appointments")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		Delete(&models.Client{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
