package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Webhook     WebhookConfig
	HealthAddr  string

	DeckRetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// WebhookConfig holds settings of the outbound deck requests
type WebhookConfig struct {
	Origin  string
	Workers int
	Queue   int
	Timeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	workers, err := getEnvInt("WEBHOOK_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	queue, err := getEnvInt("WEBHOOK_QUEUE", 64)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvInt("DECK_RETENTION_DAYS", 30)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnv("WEBHOOK_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("WEBHOOK_TIMEOUT is invalid: %w", err)
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "flashcarder"),
			User:     getEnv("DB_USER", "flashcarder"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Webhook: WebhookConfig{
			Origin:  getEnv("WEBHOOK_ORIGIN", "telegram://flashcarder"),
			Workers: workers,
			Queue:   queue,
			Timeout: timeout,
		},
		HealthAddr:        getEnv("HEALTH_ADDR", ":8080"),
		DeckRetentionDays: retention,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
