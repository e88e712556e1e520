package config

import (
	"os"
	"strconv"
	"time"
)

// Dataset source names.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string
	ViewsDir   string
	StaticDir  string

	// Dataset
	DatasetSource string // "csv" or "postgres"
	DatasetPath   string
	DatabaseURL   string

	// Chart cache (Redis). Empty URL disables caching.
	RedisURL          string
	ChartCacheTTL     time.Duration
	ChartWarmInterval time.Duration // 0 disables periodic warm-up

	// Analytics
	PieApplyPayloadFilter bool // apply the payload slider to the pie chart too

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting, requests per minute per IP
	RateLimitMax int

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "SpaceX Launch Records Dashboard"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":8050"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8050"),
		ViewsDir:      getEnv("VIEWS_DIR", "./views"),
		StaticDir:     getEnv("STATIC_DIR", "./static"),
		DatasetSource: getEnv("DATASET_SOURCE", SourceCSV),
		DatasetPath:   getEnv("DATASET_PATH", "spacex_launch_dash.csv"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/launchdash?sslmode=disable"),

		RedisURL:          getEnv("REDIS_URL", ""),
		ChartCacheTTL:     getDuration("CHART_CACHE_TTL", 10*time.Minute),
		ChartWarmInterval: getDuration("CHART_WARM_INTERVAL", 5*time.Minute),

		PieApplyPayloadFilter: getEnv("PIE_APPLY_PAYLOAD_FILTER", "") != "",

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		RateLimitMax: getInt("RATE_LIMIT_MAX", 100),

		SiteTitle:  getEnv("SITE_TITLE", "SpaceX Launch Records Dashboard"),
		SiteFooter: getEnv("SITE_FOOTER", "Launch records dashboard"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// UsesPostgres returns true if launch records are loaded from the database.
func (c *Config) UsesPostgres() bool {
	return c.DatasetSource == SourcePostgres
}

// CacheEnabled returns true if rendered charts are cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
