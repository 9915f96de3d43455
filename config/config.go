// Package config loads the settings of the fol command: where the ledger is
// stored, how prices are looked up and how things are displayed.
//
// Settings come from an optional YAML (or JSON) file, then from FOLIO_*
// environment variables, which win. A .env file in the working directory is
// loaded into the environment first.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvFile       = "FOLIO_CONFIG"
	EnvStoreKind  = "FOLIO_STORE"
	EnvStorePath  = "FOLIO_STORE_PATH"
	EnvStoreAddr  = "FOLIO_STORE_ADDR"
	EnvStoreKey   = "FOLIO_STORE_KEY"
	EnvCurrency   = "FOLIO_CURRENCY"
	EnvLanguage   = "FOLIO_LANG"
	EnvLogLevel   = "FOLIO_LOG_LEVEL"
	EnvQuoteURL   = "FOLIO_QUOTE_URL"
	EnvQuotePath  = "FOLIO_QUOTE_PATH"
	DefaultFolder = "folio"
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the complete fol configuration.
type Config struct {
	Store    Store  `json:"store" yaml:"store"`
	Quote    Quote  `json:"quote" yaml:"quote"`
	Currency string `json:"currency" yaml:"currency"` // display only, empty for plain amounts
	Language string `json:"language" yaml:"language"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Store selects the ledger storage backend.
type Store struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // directory or database file
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // redis address
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`   // redis key prefix
}

// Quote configures the live price lookup. An empty URL disables it.
type Quote struct {
	URL  string `json:"url,omitempty" yaml:"url,omitempty"` // {symbol} is replaced by the symbol
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		Store:    Store{Kind: StoreFile, Path: filepath.Join(dir, DefaultFolder)},
		Quote:    Quote{Path: "$.price"},
		Language: "en",
		LogLevel: "warning",
	}
}

// Load returns the default configuration overridden by the file at path, if
// any, and then by the environment.
//
// An empty path means the file named by FOLIO_CONFIG, or config.yaml in the
// default folder. A missing default file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvFile)
		explicit = path != ""
	}
	if !explicit {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, DefaultFolder, "config.yaml")
		}
	}

	if path != "" {
		err := cfg.LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile overrides c with the settings of a YAML or JSON file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, c); err != nil {
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config %q (tried YAML and JSON): %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if value, exists := os.LookupEnv(key); exists {
			*dst = value
		}
	}
	set(&c.Store.Kind, EnvStoreKind)
	set(&c.Store.Path, EnvStorePath)
	set(&c.Store.Addr, EnvStoreAddr)
	set(&c.Store.Key, EnvStoreKey)
	set(&c.Currency, EnvCurrency)
	set(&c.Language, EnvLanguage)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.Quote.URL, EnvQuoteURL)
	set(&c.Quote.Path, EnvQuotePath)
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreFile, StoreSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s store", c.Store.Kind)
		}
	case StoreRedis:
		if c.Store.Addr == "" {
			return fmt.Errorf("store.addr required for redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store.kind %q", c.Store.Kind)
	}
	if c.Quote.URL != "" && c.Quote.Path == "" {
		return fmt.Errorf("quote.path required with quote.url")
	}
	return nil
}
