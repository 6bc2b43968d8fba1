package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	MongoDB     MongoDBConfig
	Auth        AuthConfig
	Cache       CacheConfig
	Sheets      SheetsConfig
	Retention   RetentionConfig
	Sensitivity SensitivityConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig points at the platform session service.
type AuthConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig holds Redis settings. An empty Addr selects the in-memory cache.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// Export is disabled unless both fields are set.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether spreadsheet export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// RetentionConfig holds the purge scheduler settings. Days == 0 disables it.
type RetentionConfig struct {
	Days         int
	CronSchedule string
}

// SensitivityConfig holds the grid evaluation settings and the metric used
// when a request does not carry its own sensitivity spec.
type SensitivityConfig struct {
	Workers       int
	DefaultMetric string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment is set directly.
		_ = godotenv.Load()
	}

	authTimeout, err := getenvDuration("AUTH_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getenvDuration("CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	retentionDays, err := getenvInt("ANALYSIS_RETENTION_DAYS", 0)
	if err != nil {
		return nil, err
	}
	workers, err := getenvInt("SENSITIVITY_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "dealyield"),
		},
		Auth: AuthConfig{
			BaseURL: os.Getenv("AUTH_BASE_URL"),
			Timeout: authTimeout,
		},
		Cache: CacheConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Retention: RetentionConfig{
			Days:         retentionDays,
			CronSchedule: getenvWithDefault("ANALYSIS_RETENTION_CRON", "0 3 * * *"),
		},
		Sensitivity: SensitivityConfig{
			Workers:       workers,
			DefaultMetric: getenvWithDefault("SENSITIVITY_METRIC", string(models.MetricCashOnCash)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.BaseURL == "" {
		return errors.New("AUTH_BASE_URL must be provided")
	}
	if c.Auth.Timeout <= 0 {
		return errors.New("AUTH_TIMEOUT must be positive")
	}

	if c.Cache.DB < 0 {
		return errors.New("REDIS_DB must not be negative")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	if c.Retention.Days < 0 {
		return errors.New("ANALYSIS_RETENTION_DAYS must not be negative")
	}
	if c.Retention.Days > 0 && c.Retention.CronSchedule == "" {
		return errors.New("ANALYSIS_RETENTION_CRON must be provided when retention is enabled")
	}

	if c.Sensitivity.Workers < 1 {
		return errors.New("SENSITIVITY_WORKERS must be at least 1")
	}
	if !models.ValidMetric(models.Metric(c.Sensitivity.DefaultMetric)) {
		return fmt.Errorf("SENSITIVITY_METRIC %q is not a known metric", c.Sensitivity.DefaultMetric)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
