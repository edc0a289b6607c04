package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Quote.BaseURL != "https://stooq.com" {
		t.Errorf("Quote.BaseURL = %s", cfg.Quote.BaseURL)
	}
	if cfg.Quote.MaxRetries != 3 {
		t.Errorf("Quote.MaxRetries = %d, want 3", cfg.Quote.MaxRetries)
	}
	if cfg.Cache.TTL != 4*time.Hour {
		t.Errorf("Cache.TTL = %v, want 4h", cfg.Cache.TTL)
	}
	if cfg.Strategy.LookbackMonths != 12 {
		t.Errorf("Strategy.LookbackMonths = %d, want 12", cfg.Strategy.LookbackMonths)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 60s", cfg.Server.WriteTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("QUOTE_MAX_RETRIES", "5")
	t.Setenv("STRATEGY_LOOKBACK_MONTHS", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %s, want 9999", cfg.Port)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if cfg.Quote.MaxRetries != 5 {
		t.Errorf("Quote.MaxRetries = %d, want 5", cfg.Quote.MaxRetries)
	}
	if cfg.Strategy.LookbackMonths != 6 {
		t.Errorf("Strategy.LookbackMonths = %d, want 6", cfg.Strategy.LookbackMonths)
	}
}

func TestLoadServerTimeoutOverride(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("Server.WriteTimeout = %v, want 2m", cfg.Server.WriteTimeout)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "testing")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted invalid ENV")
	}
}

func TestLoadInvalidLookback(t *testing.T) {
	t.Setenv("STRATEGY_LOOKBACK_MONTHS", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted zero lookback")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Cache.TTL != 4*time.Hour {
		t.Errorf("Cache.TTL = %v, want default 4h", cfg.Cache.TTL)
	}
}
