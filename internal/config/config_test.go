package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.UsingDevSecret)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TIMEZONE", "America/Lima")
	t.Setenv("AUTH_RATE_BURST", "3")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.False(t, cfg.UsingDevSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "America/Lima", cfg.Location.String())
	assert.Equal(t, 3, cfg.AuthRateBurst)
	assert.True(t, cfg.TrustProxyHeaders)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cumpas.yaml")
	body := "port: 7000\ndatabase_url: /tmp/x.db\ntoken_ttl: 48h\nhabit_reset_cron: \"5 0 * * *\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.ServerPort)
	assert.Equal(t, "/tmp/x.db", cfg.DatabaseURL)
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "5 0 * * *", cfg.HabitResetCron)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "eighty"},
		{"bad ttl", "TOKEN_TTL", "forever"},
		{"bad driver", "DATABASE_DRIVER", "oracle"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus"},
		{"bad rate", "AUTH_RATE_LIMIT", "fast"},
		{"bad proxy flag", "TRUST_PROXY_HEADERS", "sometimes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}
