package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/reminisce/internal/config"
	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/games"
	"github.com/verte-zerg/reminisce/internal/model"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if cfg.Play.Pace != nil || cfg.Serve.Addr != nil {
		t.Fatalf("template values must be commented out")
	}
}

func TestResolvePlayConfigPrecedence(t *testing.T) {
	cmd := newPlayCmd()
	filePace := 2.0
	envPace := 1.5
	fileSeed := int64(42)
	fileLevel := "hard"
	cfg, err := resolvePlayConfig(cmd, "memory-tray", config.PlayConfig{
		Pace:  &filePace,
		Seed:  &fileSeed,
		Level: &fileLevel,
	}, config.EnvConfig{Pace: &envPace})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Pace != envPace || cfg.Seed != 42 || cfg.Level != "hard" || cfg.Game != "memory-tray" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	cmd = newPlayCmd()
	if err := cmd.Flags().Set("pace", "3"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	cfg, err = resolvePlayConfig(cmd, "", config.PlayConfig{Pace: &filePace}, config.EnvConfig{Pace: &envPace})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Pace != 3 {
		t.Fatalf("expected flag to win, got %v", cfg.Pace)
	}
}

func TestValidatePlayConfig(t *testing.T) {
	tests := []struct {
		cfg model.PlayConfig
		ok  bool
	}{
		{cfg: model.PlayConfig{Pace: 1, StudySeconds: 30}, ok: true},
		{cfg: model.PlayConfig{Pace: 0, StudySeconds: 30}},
		{cfg: model.PlayConfig{Pace: 1, StudySeconds: -1}},
	}
	for _, tt := range tests {
		err := validatePlayConfig(tt.cfg)
		if (err == nil) != tt.ok {
			t.Fatalf("%+v: unexpected result %v", tt.cfg, err)
		}
	}
}

func TestHistoryConfig(t *testing.T) {
	cfg, err := historyConfig(" grocery-aisle ", "2026-03-01", 5)
	if err != nil {
		t.Fatalf("history config: %v", err)
	}
	if cfg.Game != "grocery-aisle" || cfg.Last != 5 || cfg.Since == nil || cfg.Since.Month() != time.March {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := historyConfig("", "03/01/2026", 0); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := historyConfig("", "", -2); err == nil {
		t.Fatalf("expected invalid last error")
	}
}

func TestWriteGames(t *testing.T) {
	var buf bytes.Buffer
	if err := writeGames(&buf, games.Catalog(content.Pack{}, games.Options{})); err != nil {
		t.Fatalf("write games: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "daily-routine", "Easy,Hard", "Spot the Odd One"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestUnknownGameErrorListsIDs(t *testing.T) {
	err := unknownGameError("chess", games.Catalog(content.Pack{}, games.Options{}))
	if !strings.Contains(err.Error(), "faces-and-names") {
		t.Fatalf("expected available ids, got %v", err)
	}
}
