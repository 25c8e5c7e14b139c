package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/siteops")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
	assert.Equal(t, 100, cfg.Pagination.MaxSize)
	assert.Equal(t, 30, cfg.Quotations.ValidityDays)
	assert.Equal(t, time.Hour, cfg.Quotations.ExpiryInterval)
	assert.Equal(t, "£", cfg.Quotations.Currency)
	assert.Equal(t, "gemini-2.5-flash", cfg.Summary.Model)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/siteops")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://ops.example.com")
	t.Setenv("PAGINATION_DEFAULT_SIZE", "500")
	t.Setenv("PAGINATION_MAX_SIZE", "50")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 50, cfg.Pagination.DefaultSize)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	_, err := Load()
	assert.EqualError(t, err, "DB_DSN is required")
}

func TestLoadRequiresDemoPassword(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/siteops")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("DEMO_SEED", "true")
	t.Setenv("DEMO_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("  "))
	assert.Equal(t, []string{"a", "b"}, parseList("a, ,b,"))
}
