package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIBasePath is the prefix every backend endpoint lives under.
const APIBasePath = "/api/v1"

// Config holds all console configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// BackendURL is the origin of the school REST API, without the /api/v1 prefix.
	BackendURL string
	APITimeout time.Duration

	SessionSecret string
	SessionCookie string
	SessionMaxAge time.Duration

	// RedisURL and DatabaseURL are optional. Without Redis the console keeps
	// sessions in memory and the live notification feed is off; without a
	// database the audit trail is off.
	RedisURL    string
	DatabaseURL string
	MaxDBConns  int32

	LoginRatePerMinute int

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables, loading .env first
// when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "pretty"),
		BackendURL:         strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
		APITimeout:         time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second,
		SessionSecret:      getEnv("SESSION_SECRET", "change-this-to-a-secure-random-string"),
		SessionCookie:      getEnv("SESSION_COOKIE", "console_session"),
		SessionMaxAge:      time.Duration(getEnvInt("SESSION_MAX_AGE_HOURS", 24)) * time.Hour,
		RedisURL:           getEnv("REDIS_URL", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MaxDBConns:         int32(getEnvInt("MAX_DB_CONNS", 4)),
		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 20),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// APIBaseURL returns the absolute URL every API client request is built on.
func (c *Config) APIBaseURL() string {
	return c.BackendURL + APIBasePath
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
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
