package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	JWTSecret      string
	WebhookSecret  string
	RequestTimeout time.Duration
	CORSOrigins    []string
	LogLevel       string

	// object storage (optional; uploads are not archived when unset)
	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string

	// optional; order events are dropped when unset
	RabbitMQURL string
}

var required = []string{
	"DATABASE_URL",
	"JWT_SECRET",
	"VAPI_WEBHOOK_SECRET",
}

// Load reads the environment. A .env file is honoured outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			return nil, fmt.Errorf("missing env var: %s", k)
		}
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", raw)
		}
		timeout = d
	}

	return &Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("PORT", "8000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		WebhookSecret:   os.Getenv("VAPI_WEBHOOK_SECRET"),
		RequestTimeout:  timeout,
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
	}, nil
}

// StorageEnabled reports whether every R2 setting is present.
func (c *Config) StorageEnabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
