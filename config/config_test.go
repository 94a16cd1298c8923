package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("BCRYPT_PASSWORD", "pepper")
	t.Setenv("DB_USER", "store")
	t.Setenv("DB_NAME", "storefront")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 10, cfg.SaltRounds)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.True(t, cfg.AutoMigrate)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "3000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("BCRYPT_PASSWORD", "pepper")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
}

func TestValidate(t *testing.T) {
	base := Config{
		DBDriver:     DriverSQLite,
		DatabaseURL:  "file:test?mode=memory",
		TokenSecret:  "s",
		BcryptPepper: "p",
		SaltRounds:   10,
		MaxOpenConns: 1,
		LogLevel:     "info",
		LogFormat:    "json",
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.DBDriver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "DB_DRIVER")

	bad = base
	bad.SaltRounds = 99
	assert.ErrorContains(t, bad.Validate(), "SALT_ROUNDS")

	bad = base
	bad.LogLevel = "loud"
	assert.ErrorContains(t, bad.Validate(), "LOG_LEVEL")

	bad = base
	bad.LogFormat = "xml"
	assert.ErrorContains(t, bad.Validate(), "LOG_FORMAT")

	bad = base
	bad.DatabaseURL = ""
	assert.ErrorContains(t, bad.Validate(), "DATABASE_URL")
}

func TestDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "store",
		DBPassword: "p@ss",
		DBName:     "storefront",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://store:p%40ss@db:5433/storefront?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", cfg.DSN())
}
