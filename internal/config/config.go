// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration of the backend.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// DBPath is the SQLite database file. Ignored when DB_HOST selects
	// PostgreSQL.
	DBPath string

	// APIKey every client must send in the X-API-Key header.
	APIKey string

	// JWTSecret signs the session tokens.
	JWTSecret string

	// BackupDir is where database snapshots are written.
	BackupDir string

	// RedisURL enables the summary cache when set.
	RedisURL string

	// AllowOrigins restricts CORS. "*" allows every origin.
	AllowOrigins string

	// SMTP settings for password reset mails. Reset tokens are returned in
	// the API response when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	config := Config{
		Port:         getEnv("PORT", "8000"),
		DBPath:       getEnv("DB_PATH", "data/budget.sqlite"),
		APIKey:       os.Getenv("API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		BackupDir:    getEnv("BACKUP_DIR", "data/backups"),
		RedisURL:     os.Getenv("REDIS_URL"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@localhost"),
	}

	if config.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	if config.APIKey == "" {
		log.Warn().Msg("API_KEY is not set, all API requests will be rejected")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
