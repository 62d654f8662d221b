// Package config loads function settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the summarize and presign functions read.
// Credentials are not validated here; the component that needs them fails
// on first use.
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiAPIURL     string
	GeminiMaxRetries uint64

	SMTPHost       string
	SMTPPort       int
	SMTPSecure     bool
	SMTPUser       string
	SMTPPassword   string
	EmailSender    string
	EmailRecipient string

	WebhookURI string

	StorageMaxRetries uint64
	HTTPTimeout       time.Duration

	UploadBucket string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.GeminiAPIURL = envOrDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta")

	var err error
	if cfg.GeminiMaxRetries, err = parseUintEnv("GEMINI_MAX_RETRIES", 0); err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_MAX_RETRIES: %w", err)
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	port, err := parseUintEnv("SMTP_PORT", 587)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = int(port)

	if cfg.SMTPSecure, err = parseBoolEnv("SMTP_SECURE", false); err != nil {
		return Config{}, fmt.Errorf("parse SMTP_SECURE: %w", err)
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.EmailSender = os.Getenv("EMAIL_SENDER")
	cfg.EmailRecipient = envOrDefault("EMAIL_RECIPIENT", cfg.SMTPUser)

	cfg.WebhookURI = os.Getenv("WEBHOOK_URI")

	if cfg.StorageMaxRetries, err = parseUintEnv("STORAGE_MAX_RETRIES", 0); err != nil {
		return Config{}, fmt.Errorf("parse STORAGE_MAX_RETRIES: %w", err)
	}

	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		if cfg.HTTPTimeout, err = time.ParseDuration(timeout); err != nil {
			return Config{}, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
		}
	}

	cfg.UploadBucket = os.Getenv("UPLOAD_BUCKET")

	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = envOrDefault("LOG_FORMAT", "json")

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseUintEnv(key string, fallback uint64) (uint64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseUint(value, 10, 64)
}

// parseBoolEnv accepts anything strconv.ParseBool does.
func parseBoolEnv(key string, fallback bool) (bool, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
