package config

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("REGULAR_HOURS_PER_DAY", "")
	t.Setenv("OVERTIME_MULTIPLIER", "")
	t.Setenv("DOCTOR_COMMISSION_RATE", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "policlinic", cfg.Database.Name)
	assert.True(t, decimal.NewFromInt(8).Equal(cfg.Payroll.RegularHoursPerDay))
	assert.True(t, decimal.RequireFromString("1.5").Equal(cfg.Payroll.OvertimeMultiplier))
	assert.True(t, decimal.RequireFromString("0.3").Equal(cfg.Payroll.DefaultCommissionRate))
}

func TestLoad_InvalidMultiplier(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("OVERTIME_MULTIPLIER", "abc")

	_, err := Load()
	assert.ErrorContains(t, err, "OVERTIME_MULTIPLIER")
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY is required")
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "clinic", Password: "pw", Name: "policlinic", SSLMode: "disable",
	}}

	assert.Equal(t, "postgres://clinic:pw@db:5433/policlinic?sslmode=disable", cfg.DatabaseURL())
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := &Config{App: AppConfig{LogLevel: "DEBUG"}}
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.App.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestGetEnvSlice(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvSlice("CORS_ALLOWED_ORIGINS", nil))
}
