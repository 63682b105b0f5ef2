package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPass       string
	DBName       string
	DBSQLitePath string

	RedisURL string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	Timezone *time.Location

	LogLevel string
	LogFile  string

	MeiliSearchHost string
	MeiliMasterKey  string

	// SearchReindexSchedule is a cron expression. SEARCH_REINDEX_SCHEDULE=off disables the job.
	SearchReindexSchedule string

	RateLimitComment  time.Duration
	RateLimitUpload   time.Duration
	RateLimitReaction time.Duration

	ShutdownTimeout time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),

		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBName:       v.GetString("DB_NAME"),
		DBSQLitePath: v.GetString("DB_SQLITE_PATH"),

		RedisURL: v.GetString("REDIS_URL"),

		JWTSecret: v.GetString("JWT_SECRET"),

		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),

		MeiliSearchHost: v.GetString("MEILISEARCH_HOST"),
		MeiliMasterKey:  v.GetString("MEILI_MASTER_KEY"),

		SearchReindexSchedule: v.GetString("SEARCH_REINDEX_SCHEDULE"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_ACCESS_TTL", &cfg.JWTAccessTTL},
		{"JWT_REFRESH_TTL", &cfg.JWTRefreshTTL},
		{"RATE_LIMIT_COMMENT", &cfg.RateLimitComment},
		{"RATE_LIMIT_UPLOAD", &cfg.RateLimitUpload},
		{"RATE_LIMIT_REACTION", &cfg.RateLimitReaction},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	if strings.EqualFold(cfg.SearchReindexSchedule, "off") {
		cfg.SearchReindexSchedule = ""
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "videohub")
	v.SetDefault("DB_SQLITE_PATH", "videohub.db")

	v.SetDefault("REDIS_URL", "")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "24h")

	v.SetDefault("TIMEZONE", "UTC")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("MEILISEARCH_HOST", "")
	v.SetDefault("MEILI_MASTER_KEY", "")

	v.SetDefault("RATE_LIMIT_COMMENT", "5s")
	v.SetDefault("RATE_LIMIT_UPLOAD", "30s")
	v.SetDefault("RATE_LIMIT_REACTION", "0s")

	v.SetDefault("SEARCH_REINDEX_SCHEDULE", "@every 6h")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
