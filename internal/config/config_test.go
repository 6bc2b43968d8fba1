package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_BASE_URL", "http://auth.local")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "dealyield", cfg.MongoDB.DBName)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
	assert.Empty(t, cfg.Cache.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Zero(t, cfg.Retention.Days)
	assert.Equal(t, "0 3 * * *", cfg.Retention.CronSchedule)
	assert.Equal(t, 4, cfg.Sensitivity.Workers)
	assert.Equal(t, "cash_on_cash", cfg.Sensitivity.DefaultMetric)
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("AUTH_TIMEOUT", "2s")
	t.Setenv("ANALYSIS_RETENTION_DAYS", "30")
	t.Setenv("SENSITIVITY_WORKERS", "8")
	t.Setenv("SENSITIVITY_METRIC", "net_yield")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/secrets/sa.json")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 30, cfg.Retention.Days)
	assert.Equal(t, 8, cfg.Sensitivity.Workers)
	assert.Equal(t, "net_yield", cfg.Sensitivity.DefaultMetric)
	assert.True(t, cfg.Sheets.Enabled())
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGODB_DB_NAME=from_file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MONGODB_DB_NAME") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.MongoDB.DBName)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad int", "REDIS_DB", "two"},
		{"bad duration", "CACHE_TTL", "forever"},
		{"negative retention", "ANALYSIS_RETENTION_DAYS", "-1"},
		{"no workers", "SENSITIVITY_WORKERS", "0"},
		{"unknown metric", "SENSITIVITY_METRIC", "irr"},
		{"half sheets config", "GOOGLE_SHEET_DATABASE_ID", "sheet-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
		})
	}
}

func TestValidate_RequiresAuthBaseURL(t *testing.T) {
	t.Setenv("AUTH_BASE_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.EqualError(t, err, "AUTH_BASE_URL must be provided")
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}

func TestLoad_AcceptsEveryMetric(t *testing.T) {
	metrics := []models.Metric{
		models.MetricCashOnCash,
		models.MetricNetYield,
		models.MetricGrossYield,
		models.MetricPreTaxCashFlow,
		models.MetricPaybackYears,
	}

	for _, m := range metrics {
		t.Run(string(m), func(t *testing.T) {
			setRequired(t)
			t.Setenv("SENSITIVITY_METRIC", string(m))

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err)
			assert.Equal(t, string(m), cfg.Sensitivity.DefaultMetric)
		})
	}
}
