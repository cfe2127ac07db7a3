package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "LIBRARY"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is read from the environment. Every key may be given with or
// without the LIBRARY_ prefix, the prefixed form wins.
type Config struct {
	GinMode         string        `envconfig:"GIN_MODE" default:"debug"`
	TZ              string        `envconfig:"TZ" default:"UTC"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        zapcore.Level `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DBDriver      string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBPass        string        `envconfig:"DB_PASS"`
	DBName        string        `envconfig:"DB_NAME" default:"postgres"`
	DBSSLMode     string        `envconfig:"DB_SSLMODE"`
	DBMaxAttempts int           `envconfig:"DB_MAX_ATTEMPTS" default:"10"`
	DBRetryDelay  time.Duration `envconfig:"DB_RETRY_DELAY" default:"2s"`
	SQLitePath    string        `envconfig:"SQLITE_PATH" default:"library.db"`
}

// Load reads envFile (if it exists) into the process environment and then
// decodes the environment into a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.DBSSLMode == "" {
		if cfg.IsRelease() {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %q or %q)", c.DBDriver, DriverPostgres, DriverSQLite)
	}

	if c.DBMaxAttempts < 1 {
		return errors.New("DB_MAX_ATTEMPTS must be at least 1")
	}

	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// SQLiteDSN enables foreign key enforcement, which SQLite leaves off by default.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.SQLitePath + "?_foreign_keys=on"
}
