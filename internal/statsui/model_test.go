package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/reminisce/internal/model"
	"github.com/verte-zerg/reminisce/internal/store"
)

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter(" memory-tray ", "2026-01-02", "3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Game != "memory-tray" || cfg.Last != 3 || cfg.Since == nil || cfg.Since.Day() != 2 {
		t.Fatalf("unexpected filter %+v", cfg)
	}
	if _, err := parseFilter("", "yesterday", ""); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := parseFilter("", "", "-1"); err == nil {
		t.Fatalf("expected invalid last error")
	}
}

func TestSessionRowsNewestFirst(t *testing.T) {
	_, rows := sessionRows([]model.SessionAggregate{
		{Game: "old", Rounds: 2, Successes: 1},
		{Game: "new", Rounds: 4, Successes: 4},
	})
	if len(rows) != 2 || rows[0][1] != "new" || rows[0][5] != "100.0%" || rows[1][5] != "50.0%" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestModelRendersJournal(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	at := time.Unix(5000, 0).UTC()
	if _, err := st.InsertRound(context.Background(), model.RoundRecord{
		SessionID:  "s1",
		Game:       "memory-tray",
		Level:      "Easy",
		Mode:       "single",
		Title:      "Memory Tray",
		Round:      1,
		Cycle:      1,
		Success:    true,
		Score:      1,
		Attempts:   1,
		StartedAt:  at.Add(-time.Second),
		ResolvedAt: at,
		DurationMs: 1000,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	m := NewModel(st, model.HistoryConfig{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	if out := m.View(); !strings.Contains(out, "memory-tray") {
		t.Fatalf("expected game row in view:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if out := m.View(); !strings.Contains(out, "correct") {
		t.Fatalf("expected rounds view:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if out := m.View(); !strings.Contains(out, "100.0%") {
		t.Fatalf("expected trend view:\n%s", out)
	}
}
