// Package config loads and saves wisespend's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all wisespend configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Insights InsightsConfig `toml:"insights"`
	Daemon   DaemonConfig   `toml:"daemon"`
	Notify   NotifyConfig   `toml:"notify"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path,omitempty"`
	CurrencySymbol string `toml:"currency_symbol"`
	RecentCount    int    `toml:"recent_count"`
}

// InsightsConfig tunes the detectors and the alert cooldown.
type InsightsConfig struct {
	FatigueThreshold   int `toml:"fatigue_threshold"`
	FatigueWindowHours int `toml:"fatigue_window_hours"`
	AlertCooldownHours int `toml:"alert_cooldown_hours"`
	TopCategories      int `toml:"top_categories"`
}

// DaemonConfig holds watcher service settings.
type DaemonConfig struct {
	Addr              string `toml:"addr"`
	Interval          string `toml:"interval"`
	RecurringSchedule string `toml:"recurring_schedule"`
	EventsBuffer      int    `toml:"events_buffer"`
}

// NotifyConfig holds alert delivery settings.
type NotifyConfig struct {
	Email EmailConfig `toml:"email"`
}

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	Enabled  bool     `toml:"enabled"`
	Host     string   `toml:"host,omitempty"`
	Port     int      `toml:"port,omitempty"`
	Username string   `toml:"username,omitempty"`
	Password string   `toml:"password,omitempty"`
	From     string   `toml:"from,omitempty"`
	To       []string `toml:"to,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "₹",
			RecentCount:    6,
		},
		Insights: InsightsConfig{
			FatigueThreshold:   4,
			FatigueWindowHours: 12,
			AlertCooldownHours: 6,
			TopCategories:      5,
		},
		Daemon: DaemonConfig{
			Addr:              "127.0.0.1:8787",
			Interval:          "1m",
			RecurringSchedule: "@every 1h",
			EventsBuffer:      200,
		},
		Notify: NotifyConfig{
			Email: EmailConfig{Port: 587},
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wisespend")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wisespend")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the ledger.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wisespend")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wisespend")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DBPath returns the ledger path: env var, then config, then the data dir.
func DBPath(cfg Config) string {
	if p := os.Getenv("WISESPEND_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// SMTPPassword returns the SMTP password from env var or config, in that order.
func SMTPPassword(cfg Config) string {
	if pw := os.Getenv("WISESPEND_SMTP_PASSWORD"); pw != "" {
		return pw
	}
	return cfg.Notify.Email.Password
}

// FatigueWindow returns the fatigue window as a duration.
func (c InsightsConfig) FatigueWindow() time.Duration {
	return time.Duration(c.FatigueWindowHours) * time.Hour
}

// AlertCooldown returns the per-key alert cooldown as a duration.
func (c InsightsConfig) AlertCooldown() time.Duration {
	return time.Duration(c.AlertCooldownHours) * time.Hour
}

// PollInterval parses the daemon interval, falling back to one minute.
func (c DaemonConfig) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}
