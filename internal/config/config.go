package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
// Generation options arrive as CLI flags or request parameters; only process-level settings live here.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	AllowedOrigins []string // CORS allowed origins
	RateLimit      RateLimit
	MaxBatchSize   int // upper bound on count per HTTP request
	Sentry         Sentry
}

// RateLimit configures the per-IP token bucket of the HTTP service.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// Sentry configures optional error reporting. An empty DSN disables it.
type Sentry struct {
	DSN         string
	Environment string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	appEnv := getEnv("APP_ENV", "development")
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         appEnv,
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimit: RateLimit{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 40),
		},
		MaxBatchSize: getEnvInt("MAX_BATCH_SIZE", 1000),
		Sentry: Sentry{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SENTRY_ENVIRONMENT", appEnv),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
