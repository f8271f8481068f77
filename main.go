package main

import (
	"fmt"
	"log"
	"os"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/routes"
	"invoicehub-backend/services"

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
		&models.Customer{},
		&models.Invoice{},
		&models.ReminderLog{},
	)
}

func main() {
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		services.NewReminderService(config.DB).StartScheduler()
	}

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
