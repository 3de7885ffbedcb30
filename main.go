package main

import (
	"fmt"
	"log"
	"os"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/routes"
	"axis-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.Expense{},
		&models.Transfer{},
		&models.UserSetting{},
		&models.ReminderLog{},
	)
}

func main() {
	services.StartReminderScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
