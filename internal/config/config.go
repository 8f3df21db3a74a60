package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultEnv      = "development"
	defaultLogLevel = "info"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath            string
	Port              string
	Env               string
	LogLevel          string
	SettingsNamespace string
	// DefaultCurrency and DefaultBaseRate seed the settings document on first start.
	DefaultCurrency string
	DefaultBaseRate float64
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return load(".env")
}

func load(files ...string) Config {
	// Best-effort: production should use real env injection.
	_ = godotenv.Load(files...)

	cfg := Config{
		DBPath:            os.Getenv("DB_PATH"),
		Port:              os.Getenv("PORT"),
		Env:               strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		SettingsNamespace: os.Getenv("SETTINGS_NAMESPACE"),
		DefaultCurrency:   strings.ToUpper(strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY"))),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if raw := strings.TrimSpace(os.Getenv("DEFAULT_BASE_RATE")); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate > 0 {
			cfg.DefaultBaseRate = rate
		}
	}

	return cfg
}

// IsDev reports whether the process runs in a local development environment.
func (c Config) IsDev() bool {
	switch c.Env {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
