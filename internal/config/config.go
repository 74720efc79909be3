package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Mnemonic      string `envconfig:"SEEDCHECK_MNEMONIC"`
	MnemonicFile  string `envconfig:"SEEDCHECK_MNEMONIC_FILE"`
	TargetAddress string `envconfig:"SEEDCHECK_TARGET_ADDRESS"`

	Port     int    `envconfig:"SEEDCHECK_PORT" default:"8080"`
	LogLevel string `envconfig:"SEEDCHECK_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"SEEDCHECK_LOG_DIR" default:"./logs"`

	Accounts   int `envconfig:"SEEDCHECK_ACCOUNTS" default:"20"`
	AddressGap int `envconfig:"SEEDCHECK_ADDRESS_GAP" default:"20"`
	Workers    int `envconfig:"SEEDCHECK_WORKERS" default:"0"` // 0 = runtime.NumCPU()
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// Load .env file if it exists. godotenv does NOT override already-set env vars,
	// so real environment variables take precedence over .env values.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.Accounts < 1 || c.Accounts > MaxAccounts {
		return fmt.Errorf("%w: accounts must be 1-%d, got %d", ErrInvalidConfig, MaxAccounts, c.Accounts)
	}
	if c.AddressGap < 1 || c.AddressGap > MaxAddressGap {
		return fmt.Errorf("%w: address gap must be 1-%d, got %d", ErrInvalidConfig, MaxAddressGap, c.AddressGap)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
