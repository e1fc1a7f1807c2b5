package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
	Auth    AuthConfig
	Stock   StockConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port               string
	RateLimitPerMinute int
}

// StorageConfig points at the flat files holding the inventory and its history.
type StorageConfig struct {
	InventoryFile string
	HistoryFile   string
	Retention     time.Duration
}

type LogConfig struct {
	File string
}

// AuthConfig enables bearer auth on mutating routes when Secret is set.
type AuthConfig struct {
	Secret string
}

type StockConfig struct {
	LowStockThreshold int
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
		// A missing .env is fine, the process environment is enough.
		_ = godotenv.Load()
	}

	retentionDays, err := getenvInt("HISTORY_RETENTION_DAYS", 14)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getenvInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}
	lowStock, err := getenvInt("LOW_STOCK_THRESHOLD", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getenvWithDefault("PORT", "3000"),
			RateLimitPerMinute: rateLimit,
		},
		Storage: StorageConfig{
			InventoryFile: getenvWithDefault("INVENTORY_FILE", "inventory.csv"),
			HistoryFile:   getenvWithDefault("HISTORY_FILE", "history.csv"),
			Retention:     time.Duration(retentionDays) * 24 * time.Hour,
		},
		Log: LogConfig{
			File: getenvWithDefault("LOG_FILE", "app.log"),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Stock: StockConfig{
			LowStockThreshold: lowStock,
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

	switch {
	case c.Server.Port == "":
		return errors.New("PORT must be provided")
	case c.Storage.InventoryFile == "":
		return errors.New("INVENTORY_FILE must not be empty")
	case c.Storage.HistoryFile == "":
		return errors.New("HISTORY_FILE must not be empty")
	case c.Storage.InventoryFile == c.Storage.HistoryFile:
		return errors.New("INVENTORY_FILE and HISTORY_FILE must differ")
	case c.Storage.Retention <= 0:
		return errors.New("HISTORY_RETENTION_DAYS must be positive")
	case c.Server.RateLimitPerMinute < 0:
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	case c.Stock.LowStockThreshold < 0:
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
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
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}
