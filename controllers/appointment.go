package controllers

import (
	"errors"
	"net/http"
	"time"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/scheduling"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentServiceInput selects a service for a booking. Duration may be
// overridden per booking; price and name are always snapshotted from the
// current service record.
type AppointmentServiceInput struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	DurationMinutes *int      `json:"durationMinutes"`
}

type AppointmentInput struct {
	ClientID      *uuid.UUID                `json:"clientId"`
	ClientName    string                    `json:"clientName" binding:"required"`
	Date          string                    `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime     string                    `json:"startTime" binding:"required"` // HH:MM
	Services      []AppointmentServiceInput `json:"services" binding:"required,min=1,dive"`
	AdvanceAmount float64                   `json:"advanceAmount"`
	Notes         string                    `json:"notes"`
}

type CheckoutInput struct {
	AmountPaid    *float64 `json:"amountPaid" binding:"required"`
	PaymentMethod string   `json:"paymentMethod" binding:"required"`
}

type ConfirmAdvanceInput struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// parseStart combines the date and start-time fields in local time.
func parseStart(date, startTime string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, time.Local)
}

// buildSnapshots copies the selected services into booking snapshots and
// derives the total duration and amount. The snapshot is immutable once
// stored; edits replace the whole list.
func buildSnapshots(userUUID uuid.UUID, inputs []AppointmentServiceInput) (models.ServiceSnapshots, int, float64, error) {
	snapshots := make(models.ServiceSnapshots, 0, len(inputs))
	totalMinutes := 0
	totalAmount := 0.0

	for _, in := range inputs {
		var svc models.Service
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, in.ServiceID).
			First(&svc).Error; err != nil {
			return nil, 0, 0, err
		}

		duration := svc.DurationMinutes
		if in.DurationMinutes != nil {
			duration = *in.DurationMinutes
		}

		snapshots = append(snapshots, models.ServiceSnapshot{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: duration,
		})
		totalMinutes += duration
		totalAmount += svc.Price
	}
	return snapshots, totalMinutes, totalAmount, nil
}

// dayAppointments fetches every appointment starting on the given day.
func dayAppointments(userUUID uuid.UUID, day time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := config.DB.Where("user_id = ? AND start_time >= ? AND start_time <= ?",
		userUUID, utils.BeginningOfDay(day), utils.EndOfDay(day)).
		Order("start_time ASC").Find(&appointments).Error
	return appointments, err
}

// GetAppointments retrieves a month of appointments (?month=YYYY-MM,
// defaults to the current month)
func GetAppointments(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	ref := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		ref = parsed
	}
	first, last := utils.MonthBounds(ref)

	var appointments []models.Appointment
	if err := config.DB.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userUUID, first, last).
		Order("start_time ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CreateAppointment books a new appointment after checking for time conflicts
func CreateAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	start, err := parseStart(input.Date, input.StartTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or start time")
		return
	}

	snapshots, totalMinutes, totalAmount, err := buildSnapshots(userUUID, input.Services)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "One or more selected services do not exist")
		return
	}
	end := start.Add(time.Duration(totalMinutes) * time.Minute)

	existing, err := dayAppointments(userUUID, start)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if conflict := scheduling.HasConflict(existing, start, end, uuid.Nil); conflict != nil {
		utils.RespondWithError(c, http.StatusConflict, "Conflicts with the appointment of "+conflict.ClientName)
		return
	}

	appointment := models.Appointment{
		UserID:        userUUID,
		ClientID:      input.ClientID,
		ClientName:    input.ClientName,
		StartTime:     start,
		EndTime:       end,
		Services:      snapshots,
		TotalAmount:   totalAmount,
		AdvanceAmount: input.AdvanceAmount,
		Status:        models.StatusScheduled,
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment reschedules or re-edits a booking. The service snapshot
// list is replaced wholesale and the conflict check excludes the appointment
// itself.
func UpdateAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status != models.StatusScheduled {
		utils.RespondWithError(c, http.StatusBadRequest, "Only scheduled appointments can be edited")
		return
	}

	start, err := parseStart(input.Date, input.StartTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or start time")
		return
	}

	snapshots, totalMinutes, totalAmount, err := buildSnapshots(userUUID, input.Services)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "One or more selected services do not exist")
		return
	}
	end := start.Add(time.Duration(totalMinutes) * time.Minute)

	existing, err := dayAppointments(userUUID, start)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if conflict := scheduling.HasConflict(existing, start, end, appointment.ID); conflict != nil {
		utils.RespondWithError(c, http.StatusConflict, "Conflicts with the appointment of "+conflict.ClientName)
		return
	}

	appointment.ClientID = input.ClientID
	appointment.ClientName = input.ClientName
	appointment.StartTime = start
	appointment.EndTime = end
	appointment.Services = snapshots
	appointment.TotalAmount = totalAmount
	appointment.AdvanceAmount = input.AdvanceAmount
	appointment.Notes = input.Notes

	if err := config.DB.Save(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment toggles between scheduled and cancelled (reactivation)
func CancelAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	switch appointment.Status {
	case models.StatusScheduled:
		appointment.Status = models.StatusCancelled
	case models.StatusCancelled:
		appointment.Status = models.StatusScheduled
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Completed appointments cannot be cancelled")
		return
	}

	if err := config.DB.Model(&appointment).Update("status", appointment.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CheckoutAppointment completes a booking with the final payment
func CheckoutAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if *input.AmountPaid < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount paid cannot be negative")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status != models.StatusScheduled {
		utils.RespondWithError(c, http.StatusBadRequest, "Only scheduled appointments can be checked out")
		return
	}

	updates := map[string]interface{}{
		"status":            models.StatusCompleted,
		"final_amount_paid": *input.AmountPaid,
		"payment_method":    input.PaymentMethod,
	}
	if err := config.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete appointment")
		return
	}

	appointment.Status = models.StatusCompleted
	appointment.FinalAmountPaid = input.AmountPaid
	appointment.PaymentMethod = input.PaymentMethod
	c.JSON(http.StatusOK, appointment)
}

// ConfirmAdvance marks the advance payment as received (single update call)
func ConfirmAdvance(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input ConfirmAdvanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.AdvanceAmount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment has no advance payment")
		return
	}
	if appointment.AdvanceConfirmed {
		utils.RespondWithError(c, http.StatusConflict, "Advance payment already confirmed")
		return
	}

	updates := map[string]interface{}{
		"advance_confirmed": true,
		"advance_method":    input.PaymentMethod,
	}
	if err := config.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm advance payment")
		return
	}

	appointment.AdvanceConfirmed = true
	appointment.AdvanceMethod = input.PaymentMethod
	c.JSON(http.StatusOK, appointment)
}

// GetSlots returns the working-day slot grid for a date
// (?date=YYYY-MM-DD&exclude=<appointment id>)
func GetSlots(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	day := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	excludeID := uuid.Nil
	if exclude := c.Query("exclude"); exclude != "" {
		parsed, err := uuid.Parse(exclude)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid exclude ID format")
			return
		}
		excludeID = parsed
	}

	existing, err := dayAppointments(userUUID, day)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	slots := scheduling.GenerateSlots(day, scheduling.SlotInterval,
		scheduling.WorkStartHour, scheduling.WorkEndHour, existing, excludeID)

	c.JSON(http.StatusOK, slots)
}
