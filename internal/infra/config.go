package infra

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	LogLevel           string
	Port               string
	DatabaseURL        string
	DBMaxConns         int
	JWTSecret          string
	SessionTTL         time.Duration
	BcryptCost         int
	StorageBaseURL     string
	StoragePath        string
	GeoIPDBPath        string
	NATSURL            string
	DefaultLocale      string
	CORSAllowedOrigins []string
	TrustedProxies     []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 10),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionTTL:         time.Hour * time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)),
		BcryptCost:         getEnvInt("BCRYPT_COST", 10),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%s/static", port)),
		StoragePath:        getEnv("STORAGE_PATH", "./data/uploads"),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		NATSURL:            os.Getenv("NATS_URL"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en-IN"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES", nil),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if _, err := url.Parse(cfg.StorageBaseURL); err != nil {
		return nil, fmt.Errorf("invalid STORAGE_BASE_URL: %w", err)
	}
	cfg.StorageBaseURL = strings.TrimRight(cfg.StorageBaseURL, "/")

	return cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
