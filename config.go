package finbook

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the finbook.toml file: where the book lives, what the home
// currency is, and how quote fetching behaves.
type Config struct {
	Book         string        `toml:"book"`
	HomeCurrency string        `toml:"home_currency"`
	QuoteTimeout time.Duration `toml:"quote_timeout"`
}

// DefaultConfig returns the configuration used when no file is present:
// a book.jsonl in the working directory, CNY as home currency.
func DefaultConfig() *Config {
	return &Config{
		Book:         "book.jsonl",
		HomeCurrency: "CNY",
		QuoteTimeout: 30 * time.Second,
	}
}

// LoadConfig reads a TOML config file. A missing file yields the defaults;
// a present file only overrides what it sets.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against the driver registry: every
// driver a book category names must be registered. An unknown driver is a
// typo to report at startup, not at the first update.
func (c *Config) Validate(book *Book, reg *Registry) error {
	if c.HomeCurrency == "" {
		return fmt.Errorf("home currency is missing")
	}
	for cat := range book.AllCategories() {
		if cat.Driver == "" {
			continue
		}
		if _, ok := reg.Get(cat.Driver); !ok {
			return fmt.Errorf("category %q: unknown quote driver %q (have %v)",
				cat.Name, cat.Driver, reg.Names())
		}
	}
	return nil
}

// SaveConfig writes the configuration as TOML.
func SaveConfig(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
