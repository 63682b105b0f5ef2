package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, 5*time.Second, cfg.RateLimitComment)
	assert.Equal(t, time.Duration(0), cfg.RateLimitReaction)
	assert.Equal(t, "UTC", cfg.Timezone.String())
	assert.Equal(t, "@every 6h", cfg.SearchReindexSchedule)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TIMEZONE", "Asia/Jakarta")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_UPLOAD", "1m")
	t.Setenv("SEARCH_REINDEX_SCHEDULE", "OFF")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.RateLimitUpload)
	assert.Empty(t, cfg.SearchReindexSchedule)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad duration", map[string]string{"APP_ENV": "development", "RATE_LIMIT_COMMENT": "soon"}, "invalid RATE_LIMIT_COMMENT"},
		{"bad timezone", map[string]string{"APP_ENV": "development", "TIMEZONE": "Mars/Olympus"}, "invalid TIMEZONE"},
		{"missing secret", map[string]string{"APP_ENV": "production", "JWT_SECRET": ""}, "JWT_SECRET is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
