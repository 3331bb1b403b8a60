// Package config loads all runtime settings from the environment once at
// startup. Everything downstream receives a Config value; nothing else in the
// codebase reads os.Getenv.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	AppEnv  string
	BaseURL string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}

// Load reads .env (if present) and the process environment. Missing optional
// values fall back to development defaults; a missing JWT secret is fatal
// because tokens signed with a guessable key are worse than no auth at all.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "gnaascms"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 72)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@gnaascms.org"),

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
		SuperAdminName:     getEnv("SUPER_ADMIN_NAME", "Super Admin"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// MailConfigured reports whether outbound email can actually be delivered.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

// RedisConfigured reports whether the asynq worker and report cache can run.
func (c *Config) RedisConfigured() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid value for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
