package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBConnectionString string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBAutoMigrate      bool

	JWTSecret           string
	RefreshAllowedRoles []string

	ReferenceRefreshInterval time.Duration
	ReferenceFetchTimeout    time.Duration

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("Error loading .env file, continuing with system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:               withDefault(getenv("PORT"), "8080"),
		DBConnectionString: getenv("DB_CONNECTION_STRING"),
		JWTSecret:          getenv("JWT_SECRET"),
		LogLevel:           withDefault(getenv("LOG_LEVEL"), "info"),
		LogFile:            getenv("LOG_FILE"),
	}

	if cfg.DBConnectionString == "" {
		return nil, errors.New("missing DB_CONNECTION_STRING in environment variables")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("no JWT_SECRET Provided")
	}

	var err error
	if cfg.DBMaxOpenConns, err = intVar(getenv, "DB_MAX_OPEN_CONNS", 50); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = intVar(getenv, "DB_MAX_IDLE_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = durationVar(getenv, "DB_CONN_MAX_LIFETIME", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate, err = boolVar(getenv, "DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.ReferenceRefreshInterval, err = durationVar(getenv, "REFERENCE_REFRESH_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReferenceFetchTimeout, err = durationVar(getenv, "REFERENCE_FETCH_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.LogMaxSizeMB, err = intVar(getenv, "LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = intVar(getenv, "LOG_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}

	cfg.RefreshAllowedRoles = listVar(getenv("REFRESH_ALLOWED_ROLES"), []string{"service_role"})
	return cfg, nil
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, raw)
	}
	return v, nil
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return v, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func listVar(raw string, def []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
