package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseDSN string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	// ListingImageOverride replaces the image of every created or fetched
	// listing when non-empty.
	ListingImageOverride string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

func Load() Config {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/housingportal?parseTime=true"),
		JWTSecret:            getEnv("JWT_SECRET", defaultJWTSecret),
		JWTIssuer:            getEnv("JWT_ISSUER", "housingportal"),
		JWTAudience:          getEnv("JWT_AUDIENCE", "housingportal-api"),
		JWTExpiry:            time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 24*60)) * time.Minute,
		ListingImageOverride: getEnv("LISTING_IMAGE_OVERRIDE", ""),
		AuthRateLimitRPS:     getEnvFloat("AUTH_RATE_LIMIT_RPS", 5),
		AuthRateLimitBurst:   getEnvInt("AUTH_RATE_LIMIT_BURST", 10),
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// SlogLevel maps LogLevel to a slog.Level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
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
		slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("ignoring invalid number setting", "key", key, "value", v)
		return fallback
	}
	return f
}
