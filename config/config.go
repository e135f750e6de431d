// Package config loads the simulator settings.
//
// Settings are read from a YAML file, then overridden by SIMTRADE_*
// environment variables, possibly defined in a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. SIMTRADE_DATA_SOURCE or
// SIMTRADE_GAME_STARTING_CASH.
const EnvPrefix = "simtrade"

// Config holds all application configuration.
type Config struct {
	Data struct {
		Source   string        `yaml:"source"`
		Format   string        `yaml:"format"`
		JSONPath string        `yaml:"jsonpath"`
		CacheTTL time.Duration `yaml:"cache_ttl" split_words:"true"`
		CacheDir string        `yaml:"cache_dir" split_words:"true"`
		// Ticker loads prices from eodhd.com when Source is empty.
		Ticker string `yaml:"ticker"`
		APIKey string `yaml:"api_key" split_words:"true"`
	} `yaml:"data"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Game struct {
		StartingCash decimal.Decimal `yaml:"starting_cash" split_words:"true"`
		Currency     string          `yaml:"currency"`
		User         string          `yaml:"user"`
	} `yaml:"game"`
}

// Defaults.
const (
	DefaultCacheTTL     = 24 * time.Hour
	DefaultDatabasePath = "simtrade.db"
	DefaultCurrency     = "USD"
	DefaultUser         = "Player"
)

// DefaultStartingCash is used when no starting cash is configured.
var DefaultStartingCash = decimal.NewFromInt(10000)

// Load reads config from the YAML file at path, then applies environment
// variable overrides. A missing file is not an error.
//
// envFiles are loaded into the environment first, without overriding
// variables already set. Without envFiles, a .env file in the working
// directory is loaded if present.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	// Defaults
	if cfg.Data.CacheTTL <= 0 {
		cfg.Data.CacheTTL = DefaultCacheTTL
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if !cfg.Game.StartingCash.IsPositive() {
		cfg.Game.StartingCash = DefaultStartingCash
	}
	if cfg.Game.Currency == "" {
		cfg.Game.Currency = DefaultCurrency
	}
	if cfg.Game.User == "" {
		cfg.Game.User = DefaultUser
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
