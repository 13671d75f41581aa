package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	CORSOrigins    []string
	LogLevel       slog.Level

	// Tracing is off while OTLPEndpoint is empty.
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:           fallback(os.Getenv("PORT"), "3001"),
		DatabaseDriver: strings.ToLower(fallback(os.Getenv("DATABASE_DRIVER"), DriverPostgres)),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:      fallback(os.Getenv("JWT_ISSUER"), "linkinbio"),
		CORSOrigins:    parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:       parseLevel(os.Getenv("LOG_LEVEL")),
		ServiceName:    fallback(os.Getenv("OTEL_SERVICE_NAME"), "linkinbio-backend"),
		OTLPEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}

	insecure, err := strconv.ParseBool(fallback(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"), "false"))
	if err != nil {
		return Config{}, fmt.Errorf("OTEL_EXPORTER_OTLP_INSECURE: %w", err)
	}
	cfg.OTLPInsecure = insecure

	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
