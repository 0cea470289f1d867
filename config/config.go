package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Env         string
	DBDriver    string
	DBPath      string
	DatabaseURL string
	DBTimeout   time.Duration
	LogLevel    string
	LogFile     string
}

var AppConfig *Config

// Load reads .env (if any) and the environment into AppConfig. It exits on
// an invalid configuration.
func Load() {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	AppConfig = cfg
}

// FromEnv builds and validates a Config from the environment.
func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(GetEnv("DB_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("DB_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:         GetEnv("ENV", "development"),
		DBDriver:    GetEnv("DB_DRIVER", DriverSQLite),
		DBPath:      GetEnv("DB_PATH", "./data/notes-todo.db"),
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		DBTimeout:   timeout,
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFile:     GetEnv("LOG_FILE", "./data/notes-todo.log"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with cfg at once.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite3"))
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DBDriver))
	}

	if cfg.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// DSN is the data source for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
