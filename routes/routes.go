package routes

import (
	"os"
	"strings"

	"axis-backend/config"
	"axis-backend/controllers"
	"axis-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("/slots", controllers.GetSlots)
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.PUT("/:id/cancel", controllers.CancelAppointment)
			appointments.POST("/:id/checkout", controllers.CheckoutAppointment)
			appointments.POST("/:id/confirm-advance", controllers.ConfirmAdvance)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.POST("/:id/pay", controllers.PayExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		transfers := api.Group("/transfers")
		{
			transfers.POST("", controllers.CreateTransfer)
			transfers.GET("", controllers.GetTransfers)
		}

		api.GET("/cashbox", controllers.GetCashbox)
		api.GET("/dashboard", controllers.GetDashboard)
		api.GET("/forecast", controllers.GetForecast)

		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpdateSettings)
		}
	}

	return r
}
