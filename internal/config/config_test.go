package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Play.Game != nil {
		t.Fatalf("expected unset game")
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[play]
game = "memory-tray"
level = "hard"
pace = 1.5
study-seconds = 10
record = true

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Play.Game == nil || *cfg.Play.Game != "memory-tray" {
		t.Fatalf("unexpected game %v", cfg.Play.Game)
	}
	if cfg.Play.Pace == nil || *cfg.Play.Pace != 1.5 {
		t.Fatalf("unexpected pace %v", cfg.Play.Pace)
	}
	if cfg.Play.StudySeconds == nil || *cfg.Play.StudySeconds != 10 {
		t.Fatalf("unexpected study seconds")
	}
	if cfg.Play.Record == nil || !*cfg.Play.Record {
		t.Fatalf("expected record enabled")
	}
	if cfg.Serve.Addr == nil || *cfg.Serve.Addr != ":9090" {
		t.Fatalf("unexpected addr")
	}
	if cfg.Play.Seed != nil {
		t.Fatalf("expected unset seed")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "reminisce", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "reminisce", "journal.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "reminisce", "reminisce.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("REMINISCE_LOG_LEVEL", "debug")
	t.Setenv("REMINISCE_PACE", "2")
	t.Setenv("REMINISCE_CONFIG", "/tmp/custom.toml")
	cfg, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %s", cfg.LogLevel)
	}
	if cfg.Pace == nil || *cfg.Pace != 2 {
		t.Fatalf("unexpected pace %v", cfg.Pace)
	}
	if cfg.Record != nil {
		t.Fatalf("expected unset record")
	}
	if cfg.ConfigPath() != "/tmp/custom.toml" {
		t.Fatalf("unexpected config path %s", cfg.ConfigPath())
	}
}

func TestLoadEnvDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("REMINISCE_ADDR=:7070\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("REMINISCE_ADDR", "")
	if err := os.Unsetenv("REMINISCE_ADDR"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	cfg, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("expected addr from .env, got %q", cfg.Addr)
	}
}
