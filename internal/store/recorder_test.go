package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/model"
)

func TestRecorderJournalsResolutions(t *testing.T) {
	st := openTestStore(t)
	rec := NewRecorder(st, zerolog.Nop())
	t.Cleanup(rec.Close)
	if _, err := uuid.Parse(rec.SessionID()); err != nil {
		t.Fatalf("expected uuid session id, got %q", rec.SessionID())
	}

	deck := engine.Rounds{{
		Title:  "Puzzle 1",
		Prompt: "Which one is different?",
		Items: []engine.Item{
			{ID: "a", Label: "Apple"},
			{ID: "b", Label: "Car", Correct: true},
		},
	}}
	start := time.Unix(100, 0).UTC()
	now := start
	eng, err := engine.New(
		engine.Policy{Mode: engine.ModeSingle, Score: engine.ScoreKeep},
		deck,
		engine.WithScheduler(&engine.Queue{}),
		engine.WithClock(func() time.Time { return now }),
		engine.WithObserver(rec.Observer("spot-the-odd-one", func() string { return "Normal" })),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	now = start.Add(3 * time.Second)
	if err := eng.Select("b"); err != nil {
		t.Fatalf("select: %v", err)
	}
	rec.Close()

	rows, err := st.ListRounds(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 journal row, got %d", len(rows))
	}
	row := rows[0]
	if row.SessionID != rec.SessionID() || row.Game != "spot-the-odd-one" || row.Level != "Normal" {
		t.Fatalf("unexpected row identity %+v", row)
	}
	if !row.Success || row.Score != 1 || row.Mode != "single" || row.DurationMs != 3000 {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestRecorderCloseFlushesAndStopsRecording(t *testing.T) {
	st := openTestStore(t)
	rec := NewRecorder(st, zerolog.Nop())
	obs := rec.Observer("memory-tray", func() string { return "Easy" })
	at := time.Unix(500, 0).UTC()
	for round := 1; round <= 3; round++ {
		obs(engine.Result{Round: round, Cycle: 1, Outcome: engine.OutcomeSuccess, StartedAt: at, ResolvedAt: at})
	}
	rec.Close()
	obs(engine.Result{Round: 4, Cycle: 1, Outcome: engine.OutcomeFailure, StartedAt: at, ResolvedAt: at})
	rec.Close()

	rows, err := st.ListRounds(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected the 3 rounds queued before close, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Round != i+1 {
			t.Fatalf("expected rounds in resolution order, got %+v", rows)
		}
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	obs := rec.Observer("daily-routine", func() string { return "Normal" })
	obs(engine.Result{Outcome: engine.OutcomeSuccess})
	rec.Close()
	if rec.SessionID() != "" {
		t.Fatalf("expected empty session id")
	}
}
