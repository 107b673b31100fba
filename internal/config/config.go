package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN    string
	HTTPPort       string
	JWTSecret      string
	SendGridAPIKey string
	MailFrom       string
	CORSOrigin     string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	cfg := Config{
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		HTTPPort:       getenv("HTTP_PORT", "8080"),
		JWTSecret:      getenv("JWT_SECRET", "dev_secret"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenv("MAIL_FROM", "noreply@warrantydesk.local"),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.DatabaseDSN == "" {
		host := getenv("DB_HOST", "localhost")
		port := getenv("DB_PORT", "5432")
		user := getenv("DB_USER", "postgres")
		password := getenv("DB_PASSWORD", "postgres")
		name := getenv("DB_NAME", "warranty")
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, name,
		)
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the PostgreSQL database for the given config.
func InitDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	return db
}
