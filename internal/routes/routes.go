package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"warranty-management-backend/internal/config"
	handler "warranty-management-backend/internal/handlers"
	"warranty-management-backend/internal/mailer"
	"warranty-management-backend/internal/middleware"
	"warranty-management-backend/internal/repository"
	"warranty-management-backend/internal/services/accounts"
	"warranty-management-backend/internal/services/invoicing"
	"warranty-management-backend/internal/services/stats"
	"warranty-management-backend/internal/services/warranty"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, log *logrus.Logger) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	warrantyRepo := repository.NewWarrantyRepository(db)
	shopRepo := repository.NewShopRepository(db)
	userRepo := repository.NewUserRepository(db)

	mail := mailer.New(cfg.SendGridAPIKey, cfg.MailFrom, log)

	engine := warranty.NewEngine(warrantyRepo, log)
	invoiceSvc := invoicing.NewService(invoiceRepo, shopRepo, engine, log)
	accountSvc := accounts.NewService(userRepo, shopRepo, mail, db, cfg.JWTSecret, log)
	statsSvc := stats.NewService(db, log)

	authHandler := handler.NewAuthHandler(accountSvc)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc)
	warrantyHandler := handler.NewWarrantyHandler(engine)
	statsHandler := handler.NewStatsHandler(statsSvc)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	api.POST("/login", authHandler.Login)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)

	authed := api.Group("", middleware.RequireAuth(accountSvc, cfg.JWTSecret))

	// Admin user management
	admin := authed.Group("", middleware.RequireAdmin())
	admin.POST("/users", authHandler.CreateUser)
	admin.GET("/shop-owners", authHandler.ListShopOwners)
	admin.GET("/managers", authHandler.ListManagers)

	// Invoice routes
	invoices := authed.Group("/invoices")
	{
		invoices.POST("", invoiceHandler.Create)
		invoices.POST("/bulk", invoiceHandler.BulkImport)
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.PUT("/:id", invoiceHandler.Update)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	// Warranty routes
	warranties := authed.Group("/warranty")
	{
		warranties.GET("", warrantyHandler.List)
		warranties.GET("/notifications", warrantyHandler.Notifications)
		warranties.GET("/admin/notifications", middleware.RequireAdmin(), warrantyHandler.AdminNotifications)
		warranties.GET("/:id", warrantyHandler.Get)
		warranties.POST("/:id/renew", middleware.RequireAdmin(), warrantyHandler.Renew)
	}

	// Stats routes
	statsGroup := authed.Group("/stats")
	{
		statsGroup.GET("/shopowner/monthly", statsHandler.ShopMonthly)
		statsGroup.GET("/shopowner/yearly", statsHandler.ShopYearly)
		statsGroup.GET("/shopowner/lifetime", statsHandler.ShopLifetime)
		statsGroup.GET("/admin/monthly", middleware.RequireAdmin(), statsHandler.AdminMonthly)
		statsGroup.GET("/admin/yearly", middleware.RequireAdmin(), statsHandler.AdminYearly)
		statsGroup.GET("/admin/lifetime", middleware.RequireAdmin(), statsHandler.AdminLifetime)
	}

	// Analytics routes
	analytics := authed.Group("/analytics")
	{
		analytics.GET("/model-counts", statsHandler.ModelCounts)
		analytics.GET("/sales-trend", statsHandler.SalesTrend)
	}
}
