// Package config loads and validates the service configuration.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Redbus   RedbusConfig   `mapstructure:"redbus"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// RedbusConfig holds search-provider configuration.
type RedbusConfig struct {
	SearchURL     string        `mapstructure:"search_url"`
	CitySearchURL string        `mapstructure:"city_search_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	PageSize      int           `mapstructure:"page_size"`
	MaxPages      int           `mapstructure:"max_pages"`
}

// AlertsConfig holds the initial alert thresholds and poll cadence. These
// are starting values; the running service can change them through the
// administrative API.
type AlertsConfig struct {
	CriticalThreshold int           `mapstructure:"critical_threshold"`
	WarningThreshold  int           `mapstructure:"warning_threshold"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	LedgerTTL         time.Duration `mapstructure:"ledger_ttl"` // 0 = never evict
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// TelegramConfig holds Telegram notification configuration.
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
	Enabled        bool          `mapstructure:"enabled"`
}

// ArchiveConfig holds the optional SQLite alert archive configuration.
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("BUSCADOR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("redbus.search_url", "https://www.redbus.co/search/SearchV4Results")
	v.SetDefault("redbus.city_search_url", "https://www.redbus.co/Home/SolarSearch")
	v.SetDefault("redbus.timeout", "30s")
	v.SetDefault("redbus.page_size", 100)
	v.SetDefault("redbus.max_pages", 5)

	v.SetDefault("alerts.critical_threshold", 5)
	v.SetDefault("alerts.warning_threshold", 10)
	v.SetDefault("alerts.poll_interval", "5m")
	v.SetDefault("alerts.ledger_ttl", "0") // never evict

	v.SetDefault("http.listen_addr", "0.0.0.0:8000")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.db_path", "./data/alerts.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Redbus.SearchURL == "" {
		return fmt.Errorf("redbus.search_url is required")
	}
	if c.Redbus.CitySearchURL == "" {
		return fmt.Errorf("redbus.city_search_url is required")
	}
	if c.Redbus.Timeout < time.Second {
		return fmt.Errorf("redbus.timeout must be at least 1 second")
	}
	if c.Redbus.PageSize < 1 || c.Redbus.PageSize > 500 {
		return fmt.Errorf("redbus.page_size must be between 1 and 500")
	}
	if c.Redbus.MaxPages < 1 {
		return fmt.Errorf("redbus.max_pages must be at least 1")
	}

	if c.Alerts.CriticalThreshold < 1 {
		return fmt.Errorf("alerts.critical_threshold must be at least 1")
	}
	if c.Alerts.WarningThreshold <= c.Alerts.CriticalThreshold {
		return fmt.Errorf("alerts.warning_threshold must be greater than alerts.critical_threshold")
	}
	if c.Alerts.PollInterval < 10*time.Second {
		return fmt.Errorf("alerts.poll_interval must be at least 10 seconds")
	}
	if c.Alerts.LedgerTTL < 0 {
		return fmt.Errorf("alerts.ledger_ttl must not be negative")
	}

	if c.HTTP.ListenAddr == "" {
		return fmt.Errorf("http.listen_addr is required")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Archive.Enabled && c.Archive.DBPath == "" {
		return fmt.Errorf("archive.db_path is required when archive is enabled")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
