package routes

import (
	"os"
	"strings"

	"invoicehub-backend/cache"
	"invoicehub-backend/config"
	"invoicehub-backend/controllers"
	"invoicehub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Authenticate)
		auth.POST("/logout", controllers.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(utils.AuthMiddleware())
	{
		dashboard.GET("", controllers.GetDashboardOverview)

		// Invoice routes. The list is served from the response cache and
		// every mutation invalidates it.
		invoices := dashboard.Group("/invoices")
		{
			invoices.GET("", cache.Middleware(), controllers.GetInvoices)
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Customer routes
		customers := dashboard.Group("/customers")
		{
			customers.GET("", cache.Middleware(), controllers.GetCustomers)
			customers.POST("", controllers.CreateCustomer)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Reports
		dashboard.GET("/revenue", controllers.GetRevenueReport)
	}

	return r
}

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}
