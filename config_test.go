package finbook

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Book != "book.jsonl" || cfg.HomeCurrency != "CNY" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finbook.toml")
	content := `
book = "/data/mybook.jsonl"
home_currency = "EUR"
quote_timeout = 5000000000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Book != "/data/mybook.jsonl" {
		t.Errorf("book = %q", cfg.Book)
	}
	if cfg.HomeCurrency != "EUR" {
		t.Errorf("home = %q", cfg.HomeCurrency)
	}
	if cfg.QuoteTimeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.QuoteTimeout)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finbook.toml")
	want := DefaultConfig()
	want.HomeCurrency = "USD"
	if err := SaveConfig(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestConfigValidateDrivers(t *testing.T) {
	b := newTestBook(t) // the stock category names the sina driver
	cfg := DefaultConfig()

	if err := cfg.Validate(b, DefaultRegistry()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	if err := b.AddCategory(&Category{Name: "funds", Class: Investment, Driver: "typo"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(b, DefaultRegistry()); err == nil {
		t.Error("unknown driver accepted")
	}
}
