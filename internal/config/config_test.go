package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Redbus.PageSize != 100 {
		t.Errorf("Redbus.PageSize = %d, want 100", cfg.Redbus.PageSize)
	}
	if cfg.Redbus.MaxPages != 5 {
		t.Errorf("Redbus.MaxPages = %d, want 5", cfg.Redbus.MaxPages)
	}
	if cfg.Redbus.Timeout != 30*time.Second {
		t.Errorf("Redbus.Timeout = %v, want 30s", cfg.Redbus.Timeout)
	}
	if cfg.Alerts.CriticalThreshold != 5 {
		t.Errorf("Alerts.CriticalThreshold = %d, want 5", cfg.Alerts.CriticalThreshold)
	}
	if cfg.Alerts.WarningThreshold != 10 {
		t.Errorf("Alerts.WarningThreshold = %d, want 10", cfg.Alerts.WarningThreshold)
	}
	if cfg.Alerts.PollInterval != 5*time.Minute {
		t.Errorf("Alerts.PollInterval = %v, want 5m", cfg.Alerts.PollInterval)
	}
	if cfg.HTTP.ListenAddr != "0.0.0.0:8000" {
		t.Errorf("HTTP.ListenAddr = %q, want 0.0.0.0:8000", cfg.HTTP.ListenAddr)
	}
	if cfg.Telegram.Enabled {
		t.Error("Telegram.Enabled should default to false")
	}
	if cfg.Archive.Enabled {
		t.Error("Archive.Enabled should default to false")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
redbus:
  page_size: 50
  max_pages: 3
alerts:
  critical_threshold: 2
  warning_threshold: 8
  poll_interval: 1m
http:
  listen_addr: ":9090"
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Redbus.PageSize != 50 {
		t.Errorf("Redbus.PageSize = %d, want 50", cfg.Redbus.PageSize)
	}
	if cfg.Alerts.CriticalThreshold != 2 {
		t.Errorf("Alerts.CriticalThreshold = %d, want 2", cfg.Alerts.CriticalThreshold)
	}
	if cfg.Alerts.PollInterval != time.Minute {
		t.Errorf("Alerts.PollInterval = %v, want 1m", cfg.Alerts.PollInterval)
	}
	if cfg.HTTP.ListenAddr != ":9090" {
		t.Errorf("HTTP.ListenAddr = %q, want :9090", cfg.HTTP.ListenAddr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate, got: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Redbus: RedbusConfig{
				SearchURL:     "https://www.redbus.co/search/SearchV4Results",
				CitySearchURL: "https://www.redbus.co/Home/SolarSearch",
				Timeout:       30 * time.Second,
				PageSize:      100,
				MaxPages:      5,
			},
			Alerts: AlertsConfig{
				CriticalThreshold: 5,
				WarningThreshold:  10,
				PollInterval:      5 * time.Minute,
			},
			HTTP:    HTTPConfig{ListenAddr: ":8000"},
			Logging: LoggingConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing search url",
			mutate:  func(c *Config) { c.Redbus.SearchURL = "" },
			wantErr: "search_url",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.Redbus.Timeout = 100 * time.Millisecond },
			wantErr: "timeout",
		},
		{
			name:    "page size out of range",
			mutate:  func(c *Config) { c.Redbus.PageSize = 1000 },
			wantErr: "page_size",
		},
		{
			name:    "warning below critical",
			mutate:  func(c *Config) { c.Alerts.WarningThreshold = 3 },
			wantErr: "warning_threshold",
		},
		{
			name:    "poll interval too short",
			mutate:  func(c *Config) { c.Alerts.PollInterval = time.Second },
			wantErr: "poll_interval",
		},
		{
			name:    "telegram enabled without token",
			mutate:  func(c *Config) { c.Telegram.Enabled = true; c.Telegram.ChatID = "123" },
			wantErr: "bot_token",
		},
		{
			name:    "archive enabled without path",
			mutate:  func(c *Config) { c.Archive.Enabled = true },
			wantErr: "db_path",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
