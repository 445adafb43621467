package stats

import (
	"testing"

	"github.com/verte-zerg/reminisce/internal/model"
)

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for no rounds, got %v", got)
	}
	if got := Accuracy(3, 4); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestRollingAccuracyWeightsByRounds(t *testing.T) {
	sessions := []model.SessionAggregate{
		{Rounds: 2, Successes: 2},
		{Rounds: 6, Successes: 0},
		{Rounds: 4, Successes: 4},
	}
	got := RollingAccuracy(sessions, 2)
	want := []float64{100, 25, 40}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if all := RollingAccuracy(sessions, 0); all[1] != 0 {
		t.Fatalf("window below 1 should fall back to per-session accuracy, got %v", all)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 50, 100, 140}); got != "▁▄██" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestSuggestGames(t *testing.T) {
	aggs := []model.GameAggregate{
		{Game: "b", Rounds: 4, Successes: 2},
		{Game: "a", Rounds: 2, Successes: 1},
		{Game: "c", Rounds: 5, Successes: 5},
	}
	got := SuggestGames(aggs, 2)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if all := SuggestGames(aggs, 0); len(all) != 3 || all[2] != "c" {
		t.Fatalf("expected all games, got %v", all)
	}
}
