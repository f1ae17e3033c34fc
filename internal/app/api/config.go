package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

const (
	defaultOAuthClientID     = "myclientid"
	defaultOAuthClientSecret = "myclientsecret"
	defaultServiceVersion    = "dev"
	defaultEnvironment       = "local"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	SeedData          bool
	JWTSecret         string
	TokenTTL          time.Duration
	OAuthClientID     string
	OAuthClientSecret string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	Telemetry         platformobservability.Settings
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
// A .env file in the working directory is read first when present; real env vars win.
func LoadConfig() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SeedData:          isTruthy(envDefault("SEED_DATA", "true")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:          security.DefaultTokenTTL,
		OAuthClientID:     envDefault("OAUTH_CLIENT_ID", defaultOAuthClientID),
		OAuthClientSecret: envDefault("OAUTH_CLIENT_SECRET", defaultOAuthClientSecret),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		Telemetry:         LoadTelemetry(serviceName),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric")
	}
	if raw := strings.TrimSpace(os.Getenv("JWT_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("JWT_TTL_SECONDS must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(seconds) * time.Second
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadDotEnv reads a .env file from the working directory. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	return nil
}

// LoadTelemetry reads the observability settings shared by the API and the worker.
func LoadTelemetry(service string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:    service,
		ServiceVersion: envDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment:    envDefault("ENVIRONMENT", defaultEnvironment),
		OTLPEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
		StdoutTraces:   strings.EqualFold(strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")), "console"),
	}
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
