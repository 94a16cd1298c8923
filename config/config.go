package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the process configuration. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBDriver        string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	DBHost          string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort          string        `env:"DB_PORT" envDefault:"5432"`
	DBUser          string        `env:"DB_USER"`
	DBPassword      string        `env:"DB_PASSWORD"`
	DBName          string        `env:"DB_NAME"`
	DBSSLMode       string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	TokenSecret  string        `env:"TOKEN_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"0s"`
	BcryptPepper string        `env:"BCRYPT_PASSWORD"`
	SaltRounds   int           `env:"SALT_ROUNDS" envDefault:"10"`

	AdminAPIKey  string   `env:"ADMIN_API_KEY"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env when present and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.TokenSecret) == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if strings.TrimSpace(c.BcryptPepper) == "" {
		return fmt.Errorf("BCRYPT_PASSWORD is required")
	}
	if c.SaltRounds < bcrypt.MinCost || c.SaltRounds > bcrypt.MaxCost {
		return fmt.Errorf("SALT_ROUNDS must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL must not be negative")
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
			return fmt.Errorf("DATABASE_URL or DB_USER and DB_NAME are required")
		}
	case DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver)
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}

// DSN returns DATABASE_URL, or builds a postgres DSN from the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
