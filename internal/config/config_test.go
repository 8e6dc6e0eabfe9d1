package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Insights.FatigueThreshold != 4 || cfg.Insights.FatigueWindow() != 12*time.Hour {
		t.Fatalf("fatigue defaults = %d/%s", cfg.Insights.FatigueThreshold, cfg.Insights.FatigueWindow())
	}
	if cfg.Insights.AlertCooldown() != 6*time.Hour {
		t.Fatalf("AlertCooldown = %s, want 6h", cfg.Insights.AlertCooldown())
	}
	if Exists() {
		t.Fatal("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.RecentCount = 10
	cfg.Daemon.Interval = "30s"
	cfg.Notify.Email = EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 2525, To: []string{"me@example.com"}}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.RecentCount != 10 || got.Daemon.PollInterval() != 30*time.Second {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if !got.Notify.Email.Enabled || got.Notify.Email.Port != 2525 || len(got.Notify.Email.To) != 1 {
		t.Fatalf("email = %+v", got.Notify.Email)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "wisespend", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[insights]\nfatigue_threshold = 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Insights.FatigueThreshold != 6 {
		t.Fatalf("FatigueThreshold = %d, want 6", cfg.Insights.FatigueThreshold)
	}
	if cfg.Insights.TopCategories != 5 || cfg.Daemon.Addr == "" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "wisespend", "config.toml")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("[insights\n"), 0o600)

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DBPath = "/from/config.db"
	cfg.Notify.Email.Password = "cfg-secret"

	t.Setenv("WISESPEND_DB", "")
	t.Setenv("WISESPEND_SMTP_PASSWORD", "")
	if DBPath(cfg) != "/from/config.db" || SMTPPassword(cfg) != "cfg-secret" {
		t.Fatalf("config values not used: %s / %s", DBPath(cfg), SMTPPassword(cfg))
	}

	t.Setenv("WISESPEND_DB", "/from/env.db")
	t.Setenv("WISESPEND_SMTP_PASSWORD", "env-secret")
	if DBPath(cfg) != "/from/env.db" || SMTPPassword(cfg) != "env-secret" {
		t.Fatalf("env overrides ignored: %s / %s", DBPath(cfg), SMTPPassword(cfg))
	}

	t.Setenv("WISESPEND_DB", "")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DBPath(DefaultConfig()); got != filepath.Join("/data", "wisespend", "ledger.db") {
		t.Fatalf("DBPath default = %s", got)
	}
}

func TestPollIntervalFallback(t *testing.T) {
	if got := (DaemonConfig{Interval: "soon"}).PollInterval(); got != time.Minute {
		t.Fatalf("PollInterval = %s, want 1m", got)
	}
}
