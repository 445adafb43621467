package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/reminisce/internal/model"
	"github.com/verte-zerg/reminisce/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(0, 0).UTC()
	plays := []struct {
		session string
		game    string
		success bool
	}{
		{"s1", "spot-the-odd-one", true},
		{"s1", "spot-the-odd-one", true},
		{"s2", "grocery-aisle", false},
		{"s2", "grocery-aisle", true},
		{"s3", "faces-and-names", false},
	}
	for i, p := range plays {
		at := base.Add(time.Duration(i) * time.Minute)
		rec := model.RoundRecord{
			SessionID:  p.session,
			Game:       p.game,
			Level:      "Normal",
			Mode:       "single",
			Title:      "round",
			Round:      i + 1,
			Cycle:      1,
			Success:    p.success,
			Score:      1,
			Attempts:   1,
			StartedAt:  at.Add(-10 * time.Second),
			ResolvedAt: at,
			DurationMs: 10000,
		}
		if _, err := st.InsertRound(ctx, rec); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(report.Games))
	}
	if len(report.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(report.Sessions))
	}
	if len(report.Rounds) != 5 {
		t.Fatalf("expected 5 rounds, got %d", len(report.Rounds))
	}
	if len(report.Suggest) != 2 || report.Suggest[0] != "faces-and-names" || report.Suggest[1] != "grocery-aisle" {
		t.Fatalf("unexpected suggestions %v", report.Suggest)
	}

	filtered, err := BuildReport(ctx, st, model.HistoryConfig{Game: "grocery-aisle"})
	if err != nil {
		t.Fatalf("build filtered report: %v", err)
	}
	if len(filtered.Games) != 1 || filtered.Games[0].Rounds != 2 {
		t.Fatalf("unexpected filtered report %+v", filtered.Games)
	}
}

func TestRenderReport(t *testing.T) {
	report := Report{
		Games: []model.GameAggregate{{
			Game:       "memory-tray",
			Sessions:   2,
			Rounds:     4,
			Successes:  3,
			BestScore:  3,
			DurationMs: 65000,
			LastPlayed: time.Unix(0, 0),
		}},
		Sessions: []model.SessionAggregate{
			{SessionID: "a", Rounds: 2, Successes: 1},
			{SessionID: "b", Rounds: 2, Successes: 2},
		},
		Suggest: []string{"memory-tray"},
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"memory-tray", "75.0%", "1m5s", "Accuracy trend", "Needs practice  memory-tray"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRoundRowsNewestFirst(t *testing.T) {
	_, rows := RoundRows([]model.RoundRecord{
		{Game: "daily-routine", Title: "Brushing Teeth", Success: false, Attempts: 2, DurationMs: 4200},
		{Game: "memory-tray", Title: "Round 3", Success: true, Score: 3, Attempts: 1, DurationMs: 1500},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "memory-tray" || rows[0][4] != "correct" || rows[0][7] != "1.5s" {
		t.Fatalf("unexpected newest row %v", rows[0])
	}
	if rows[1][4] != "missed" || rows[1][6] != "2" {
		t.Fatalf("unexpected oldest row %v", rows[1])
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No rounds recorded") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderReportTruncatesToWidth(t *testing.T) {
	report := Report{Games: []model.GameAggregate{{Game: "daily-routine", Rounds: 1, Successes: 1}}}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 12); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len([]rune(line)) > 12 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
