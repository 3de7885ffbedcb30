package controllers

import (
	"net/http"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsInput struct {
	Theme     *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	AlertDays *int    `json:"alertDays" binding:"omitempty,min=0"`
}

// GetSettings returns the user's preferences, creating the defaults on
// first access.
func GetSettings(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var setting models.UserSetting
	if err := config.DB.Where("user_id = ?", userUUID).First(&setting).Error; err != nil {
		setting = models.UserSetting{
			UserID:    userUUID,
			Theme:     "system",
			AlertDays: models.DefaultAlertDays,
		}
		if err := config.DB.Create(&setting).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	}

	c.JSON(http.StatusOK, setting)
}

// UpdateSettings applies partial changes to the user's preferences
func UpdateSettings(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var setting models.UserSetting
	if err := config.DB.Where("user_id = ?", userUUID).First(&setting).Error; err != nil {
		setting = models.UserSetting{
			UserID:    userUUID,
			Theme:     "system",
			AlertDays: models.DefaultAlertDays,
		}
		if err := config.DB.Create(&setting).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to initialize settings")
			return
		}
	}

	if input.Theme != nil {
		setting.Theme = *input.Theme
	}
	if input.AlertDays != nil {
		setting.AlertDays = *input.AlertDays
	}

	if err := config.DB.Save(&setting).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, setting)
}
