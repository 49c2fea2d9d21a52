package routes

import (
	"acc-panel/internal/api/handlers"
	"acc-panel/internal/api/middleware"
	"acc-panel/internal/config"
	"acc-panel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	// Initialize services
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(cfg)
	accountHandler := handlers.NewAccountHandler(cfg)
	bulkHandler := handlers.NewBulkHandler(cfg, log)

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.ErrorHandler())

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "acc-panel API is running",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Auth routes (protected)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)

		// User management routes (admin only)
		users := protected.Group("/users", middleware.RequireRole("admin"))
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Account routes
		accounts := protected.Group("/accounts")
		{
			accounts.GET("", accountHandler.GetAccounts)
			accounts.GET("/export", accountHandler.ExportAccounts)
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.POST("", accountHandler.CreateAccount)
			accounts.PUT("/:id", accountHandler.UpdateAccount)
			accounts.PATCH("/:id/status", accountHandler.UpdateStatus)
			accounts.DELETE("/:id", accountHandler.DeleteAccount)
			accounts.POST("/import", accountHandler.ImportAccounts)
			accounts.POST("/import-text", bulkHandler.ImportText)

			warranty := accounts.Group("/warranty")
			{
				warranty.POST("/preview", bulkHandler.WarrantyPreview)
				warranty.POST("/commit", bulkHandler.WarrantyCommit)
			}

			bulk := accounts.Group("/bulk")
			{
				bulk.POST("/password", bulkHandler.BulkPassword)
				bulk.POST("/warranty-password", bulkHandler.BulkWarrantyPassword)
				bulk.POST("/delete", accountHandler.DeleteBatch)
			}
		}
	}
}
