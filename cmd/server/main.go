package main

import (
	"time"

	"warranty-management-backend/internal/config"
	"warranty-management-backend/internal/models"
	"warranty-management-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.StandardLogger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()
	db := config.InitDB(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Shop{},
		&models.Manager{},
		&models.Invoice{},
		&models.Warranty{},
		&models.ImportBatch{},
	); err != nil {
		log.WithError(err).Fatal("auto-migration failed")
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, log)

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
