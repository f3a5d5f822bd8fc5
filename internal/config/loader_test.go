package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	clear := []string{
		"SOUNDDESK_HTTP_PORT",
		"SOUNDDESK_SQLITE_PATH",
		"SOUNDDESK_TAX_RATE",
		"SOUNDDESK_CURRENCY",
		"SOUNDDESK_OPEN_TIME",
		"SOUNDDESK_CLOSE_TIME",
	}

	reset := func(t *testing.T) {
		t.Helper()
		for _, key := range clear {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}
	}

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		reset(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLitePath != "sounddesk.db" {
			t.Fatalf("unexpected default SQLite path: %q", cfg.SQLitePath)
		}
		if cfg.TaxRate != 0.1 {
			t.Fatalf("expected default tax rate 0.1, got %v", cfg.TaxRate)
		}
		if cfg.DefaultCurrency != "KRW" {
			t.Fatalf("expected default currency KRW, got %q", cfg.DefaultCurrency)
		}
		if cfg.OpenTime != "09:00" || cfg.CloseTime != "22:00" {
			t.Fatalf("unexpected default opening hours: %s-%s", cfg.OpenTime, cfg.CloseTime)
		}
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		reset(t)
		t.Setenv("SOUNDDESK_HTTP_PORT", "9090")
		t.Setenv("SOUNDDESK_SQLITE_PATH", "/tmp/studio.db")
		t.Setenv("SOUNDDESK_TAX_RATE", "0.2")
		t.Setenv("SOUNDDESK_CURRENCY", "USD")
		t.Setenv("SOUNDDESK_OPEN_TIME", "08:00")
		t.Setenv("SOUNDDESK_CLOSE_TIME", "23:00")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 || cfg.SQLitePath != "/tmp/studio.db" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.TaxRate != 0.2 || cfg.DefaultCurrency != "USD" {
			t.Fatalf("unexpected billing config: %+v", cfg)
		}
		if cfg.OpenTime != "08:00" || cfg.CloseTime != "23:00" {
			t.Fatalf("unexpected opening hours: %s-%s", cfg.OpenTime, cfg.CloseTime)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		reset(t)
		t.Setenv("SOUNDDESK_HTTP_PORT", "not-a-port")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for malformed port")
		}
	})

	t.Run("rejects inverted opening hours", func(t *testing.T) {
		reset(t)
		t.Setenv("SOUNDDESK_OPEN_TIME", "22:00")
		t.Setenv("SOUNDDESK_CLOSE_TIME", "09:00")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for inverted opening hours")
		}
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		reset(t)
		t.Setenv("SOUNDDESK_CURRENCY", "EUR")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unsupported currency")
		}
	})
}
