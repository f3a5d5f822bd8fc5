package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/sounddesk/internal/scheduler"
)

// Config captures environment driven configuration for the SoundDesk service.
type Config struct {
	HTTPPort   int
	SQLitePath string
	// TaxRate is applied by invoice calculation, e.g. 0.1 for 10%.
	TaxRate float64
	// DefaultCurrency seeds the settings singleton on first run.
	DefaultCurrency string
	// OpenTime and CloseTime bound the bookable day (HH:mm) and feed
	// room-utilization reporting.
	OpenTime  string
	CloseTime string
}

// Load resolves configuration from a .env file (when present) and the
// process environment. Every value has a default; malformed values are
// reported rather than silently replaced.
func Load() (Config, error) {
	// A missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:        8080,
		SQLitePath:      "sounddesk.db",
		TaxRate:         0.1,
		DefaultCurrency: "KRW",
		OpenTime:        "09:00",
		CloseTime:       "22:00",
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SOUNDDESK_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SOUNDDESK_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if path := strings.TrimSpace(os.Getenv("SOUNDDESK_SQLITE_PATH")); path != "" {
		cfg.SQLitePath = path
	}

	if rateValue := strings.TrimSpace(os.Getenv("SOUNDDESK_TAX_RATE")); rateValue != "" {
		rate, err := strconv.ParseFloat(rateValue, 64)
		if err != nil || rate < 0 || rate >= 1 {
			invalid = append(invalid, "SOUNDDESK_TAX_RATE")
		} else {
			cfg.TaxRate = rate
		}
	}

	if currency := strings.TrimSpace(os.Getenv("SOUNDDESK_CURRENCY")); currency != "" {
		switch currency {
		case "KRW", "USD":
			cfg.DefaultCurrency = currency
		default:
			invalid = append(invalid, "SOUNDDESK_CURRENCY")
		}
	}

	if open := strings.TrimSpace(os.Getenv("SOUNDDESK_OPEN_TIME")); open != "" {
		if scheduler.ValidTimeOfDay(open) {
			cfg.OpenTime = open
		} else {
			invalid = append(invalid, "SOUNDDESK_OPEN_TIME")
		}
	}

	if close := strings.TrimSpace(os.Getenv("SOUNDDESK_CLOSE_TIME")); close != "" {
		if scheduler.ValidTimeOfDay(close) {
			cfg.CloseTime = close
		} else {
			invalid = append(invalid, "SOUNDDESK_CLOSE_TIME")
		}
	}

	if cfg.OpenTime >= cfg.CloseTime {
		invalid = append(invalid, "SOUNDDESK_OPEN_TIME/SOUNDDESK_CLOSE_TIME")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
