// Package config loads server configuration from a TOML file with
// environment variable overrides. The habit and team catalog lives here
// too: it is static input supplied at startup, never persisted state.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/hmori/dopabalance/internal/model"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// Config is the full application configuration
type Config struct {
	Server  ServerConfig   `toml:"server"`
	Storage StorageConfig  `toml:"storage"`
	Session SessionConfig  `toml:"session"`
	Catalog *model.Catalog `toml:"catalog"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects and configures the ledger store backend
type StorageConfig struct {
	// Type is "memory", "redis" or "postgres"
	Type        string `toml:"type"`
	RedisURL    string `toml:"redis_url"`
	PostgresDSN string `toml:"postgres_dsn"`
}

// SessionConfig holds session settings
type SessionConfig struct {
	DurationHours int `toml:"duration_hours"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: 8080,
		},
		Storage: StorageConfig{
			Type:     StorageTypeMemory,
			RedisURL: "redis://localhost:6379",
		},
		Session: SessionConfig{
			DurationHours: 24,
		},
	}
}

// Load reads the TOML file at path (if it exists), applies environment
// overrides, fills the default catalog when none was configured, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine; defaults plus env apply
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Catalog == nil {
		cfg.Catalog = model.DefaultCatalog()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural errors
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypeMemory, StorageTypeRedis, StorageTypePostgres:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q, %q or %q",
			c.Storage.Type, StorageTypeMemory, StorageTypeRedis, StorageTypePostgres)
	}
	if c.Storage.Type == StorageTypeRedis && c.Storage.RedisURL == "" {
		return fmt.Errorf("redis_url required when storage type is redis")
	}
	if c.Storage.Type == StorageTypePostgres && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn required when storage type is postgres")
	}
	if c.Session.DurationHours <= 0 {
		return fmt.Errorf("session duration_hours must be positive")
	}
	if c.Catalog != nil {
		if err := c.Catalog.Validate(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if host, ok := os.LookupEnv("HOST"); ok {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if t := os.Getenv("STORAGE_TYPE"); t != "" {
		cfg.Storage.Type = t
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Storage.RedisURL = url
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}
}
