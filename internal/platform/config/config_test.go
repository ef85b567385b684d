package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"zenstreak/internal/platform/config"
)

func TestNewRequiresHome(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty home")
	}
	cfg, err := config.New("/tmp/zen")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DataDir() != filepath.Join("/tmp/zen", "data") {
		t.Fatalf("unexpected data dir %s", cfg.DataDir())
	}
	if cfg.Storage != config.StorageFile || cfg.DefaultDuration != 5 || cfg.DefaultType != "mindfulness" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsYAMLAndAppliesOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ZENSTREAK_HOME", "")
	t.Setenv("ZENSTREAK_STORAGE", "")
	t.Setenv("ZENSTREAK_TZ", "")
	t.Setenv("ZENSTREAK_LOG_LEVEL", "")
	raw := "storage: sqlite\ntimezone: Asia/Tokyo\njournal: true\nhooks: false\ndefault_type: breathing\ndefault_duration: 10\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(config.Overrides{Home: home})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != config.StorageSQLite {
		t.Fatalf("expected sqlite storage, got %s", cfg.Storage)
	}
	if cfg.Location.String() != "Asia/Tokyo" {
		t.Fatalf("expected Asia/Tokyo, got %s", cfg.Location)
	}
	if !cfg.Journal || cfg.Hooks {
		t.Fatalf("expected journal on and hooks off: %+v", cfg)
	}
	if cfg.DefaultType != "breathing" || cfg.DefaultDuration != 10 {
		t.Fatalf("unexpected defaults from file: %+v", cfg)
	}

	cfg, err = config.Load(config.Overrides{Home: home, Storage: "file", Verbose: true})
	if err != nil {
		t.Fatalf("load with overrides: %v", err)
	}
	if cfg.Storage != config.StorageFile || cfg.LogLevel != "debug" {
		t.Fatalf("flag overrides not applied: %+v", cfg)
	}

	cfg, err = config.Load(config.Overrides{Home: home, Ephemeral: true})
	if err != nil {
		t.Fatalf("load ephemeral: %v", err)
	}
	if cfg.Persistent() {
		t.Fatalf("ephemeral config must not be persistent")
	}
}

func TestLoadEnvironmentBeatsFile(t *testing.T) {
	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("storage: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ZENSTREAK_HOME", home)
	t.Setenv("ZENSTREAK_STORAGE", "file")
	t.Setenv("ZENSTREAK_TZ", "UTC")
	t.Setenv("ZENSTREAK_LOG_LEVEL", "warn")

	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Home != home || cfg.Storage != config.StorageFile || cfg.LogLevel != "warn" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", cfg.Location)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("ZENSTREAK_HOME", "")
	t.Setenv("ZENSTREAK_STORAGE", "")
	t.Setenv("ZENSTREAK_TZ", "")
	t.Setenv("ZENSTREAK_LOG_LEVEL", "")
	if _, err := config.Load(config.Overrides{Home: t.TempDir(), Storage: "postgres"}); err == nil {
		t.Fatalf("expected unsupported storage error")
	}

	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("timezone: Mars/Olympus\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(config.Overrides{Home: home}); err == nil {
		t.Fatalf("expected timezone error")
	}

	bad := t.TempDir()
	if err := os.WriteFile(filepath.Join(bad, "config.yaml"), []byte("storage: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(config.Overrides{Home: bad}); err == nil {
		t.Fatalf("expected decode error")
	}
}
