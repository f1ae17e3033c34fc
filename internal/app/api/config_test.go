package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "a-secret-long-enough-for-hs256-signing")
	for _, key := range []string{"PORT", "POSTGRES_DSN", "SEED_DATA", "JWT_TTL_SECONDS", "OAUTH_CLIENT_ID", "OAUTH_CLIENT_SECRET", "TEMPORAL_DISABLED", "SERVICE_VERSION", "ENVIRONMENT", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE", "OTEL_TRACES_EXPORTER"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.True(t, cfg.SeedData)
	require.Equal(t, security.DefaultTokenTTL, cfg.TokenTTL)
	require.Equal(t, defaultOAuthClientID, cfg.OAuthClientID)
	require.Equal(t, defaultOAuthClientSecret, cfg.OAuthClientSecret)
	require.False(t, cfg.TemporalDisabled)
	require.Empty(t, cfg.PostgresDSN)
	require.Equal(t, "commerce-api", cfg.Telemetry.ServiceName)
	require.Equal(t, defaultServiceVersion, cfg.Telemetry.ServiceVersion)
	require.Equal(t, defaultEnvironment, cfg.Telemetry.Environment)
	require.True(t, cfg.Telemetry.OTLPInsecure)
	require.False(t, cfg.Telemetry.StdoutTraces)
}

func TestLoadTelemetry_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVICE_VERSION", "1.4.0")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_TRACES_EXPORTER", "console")

	settings := LoadTelemetry("commerce-worker")
	require.Equal(t, "commerce-worker", settings.ServiceName)
	require.Equal(t, "1.4.0", settings.ServiceVersion)
	require.Equal(t, "staging", settings.Environment)
	require.Equal(t, "collector:4318", settings.OTLPEndpoint)
	require.False(t, settings.OTLPInsecure)
	require.True(t, settings.StdoutTraces)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, LoadDotEnv())
}

func TestLoadDotEnv_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOT-VALID=1\n"), 0o600))
	t.Chdir(dir)

	require.Error(t, LoadDotEnv())

	setRequiredEnv(t)
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("JWT_TTL_SECONDS", "120")
	t.Setenv("OAUTH_CLIENT_ID", "shop")
	t.Setenv("TEMPORAL_DISABLED", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.False(t, cfg.SeedData)
	require.Equal(t, 2*time.Minute, cfg.TokenTTL)
	require.Equal(t, "shop", cfg.OAuthClientID)
	require.True(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {"JWT_SECRET": ""},
		"negative ttl":   {"JWT_TTL_SECONDS": "-1"},
		"textual ttl":    {"JWT_TTL_SECONDS": "soon"},
		"bad port":       {"PORT": "http"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
