// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/scheduling"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartReminderScheduler wires the daily return-reminder job. Disabled
// unless Twilio credentials are configured.
func StartReminderScheduler() {
	if os.Getenv("TWILIO_ACCOUNT_SID") == "" {
		log.Println("Twilio not configured, reminder scheduler disabled")
		return
	}

	s := NewReminderService(config.DB)
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var users []models.User
	if err := s.db.Find(&users, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		return
	}

	for _, user := range users {
		s.ProcessUserReminders(user.ID)
	}

	log.Println("Daily reminder processing completed")
}

// ProcessUserReminders runs the forecast for one user and messages every
// client whose return window entered the alert threshold.
func (s *ReminderService) ProcessUserReminders(userID uuid.UUID) {
	var clients []models.Client
	if err := s.db.Where("user_id = ?", userID).Find(&clients).Error; err != nil {
		log.Printf("User %s: Failed to fetch clients: %v", userID, err)
		return
	}

	var services []models.Service
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&services).Error; err != nil {
		log.Printf("User %s: Failed to fetch services: %v", userID, err)
		return
	}

	var completed []models.Appointment
	if err := s.db.Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Find(&completed).Error; err != nil {
		log.Printf("User %s: Failed to fetch appointments: %v", userID, err)
		return
	}

	alertDays := models.DefaultAlertDays
	var setting models.UserSetting
	if err := s.db.Where("user_id = ?", userID).First(&setting).Error; err == nil {
		alertDays = setting.AlertDays
	}

	forecast := scheduling.ComputeForecast(clients, services, completed,
		alertDays, scheduling.DefaultHorizonDays, time.Now())
	if len(forecast.ClientsNeedingAlert) == 0 {
		return
	}

	recent, err := s.recentlyNotified(userID, alertDays)
	if err != nil {
		log.Printf("User %s: Failed to fetch reminder logs: %v", userID, err)
		return
	}

	for _, client := range clients {
		if !forecast.ClientsNeedingAlert[client.ID] {
			continue
		}
		if recent[client.ID] {
			continue
		}
		if client.Phone == "" {
			continue
		}
		s.sendReminder(userID, client)
	}
}

// recentlyNotified returns the clients already messaged within the alert
// window so a client gets at most one reminder per cycle.
func (s *ReminderService) recentlyNotified(userID uuid.UUID, alertDays int) (map[uuid.UUID]bool, error) {
	cutoff := time.Now().AddDate(0, 0, -alertDays)

	var logs []models.ReminderLog
	if err := s.db.Where("user_id = ? AND status = ? AND sent_at >= ?", userID, "sent", cutoff).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	recent := make(map[uuid.UUID]bool, len(logs))
	for _, entry := range logs {
		recent[entry.ClientID] = true
	}
	return recent, nil
}

func (s *ReminderService) sendReminder(userID uuid.UUID, client models.Client) {
	message := fmt.Sprintf("Hi %s! It's been a while since your last visit. Would you like to book your next appointment?", client.Name)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	} else {
		to = client.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", client.Phone)
	}

	reminderLog := models.ReminderLog{
		UserID:       userID,
		ClientID:     client.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for client %s: %v", client.ID, err)
	}
}
