package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/reminisce/internal/engine"
)

func TestFitCellPadsAndTruncates(t *testing.T) {
	if got := fitCell("Apple", 8); got != "Apple   " {
		t.Fatalf("unexpected padding %q", got)
	}
	got := fitCell("🍎 Apple pie", 6)
	if runewidth.StringWidth(got) != 6 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := fitCell("x", 0); got != "" {
		t.Fatalf("expected empty cell, got %q", got)
	}
}

func TestCardsForSortStates(t *testing.T) {
	snap := engine.Snapshot{
		Mode:  engine.ModeSort,
		Phase: engine.PhaseActive,
		Items: []engine.Item{
			{ID: "1", Label: "Milk", Category: "dairy"},
			{ID: "2", Label: "Bread", Category: "bakery"},
			{ID: "3", Label: "Cheese", Category: "dairy"},
		},
		Categories: []engine.Category{{ID: "dairy", Name: "Dairy"}, {ID: "bakery", Name: "Bakery"}},
		Matched:    []engine.ItemID{"1"},
		Rejected:   "2",
		Selection:  []engine.Item{{ID: "3", Label: "Cheese", Category: "dairy"}},
	}
	items := cardsFor(snap, 0, "")
	want := []cardState{cardDone, cardRejected, cardSelected}
	for i, st := range want {
		if items[i].state != st {
			t.Fatalf("item %d: expected state %d, got %d", i, st, items[i].state)
		}
	}
	bins := cardsFor(snap, 1, "")
	if len(bins) != 2 || bins[0].text != "Dairy (1)" || bins[1].text != "Bakery (0)" {
		t.Fatalf("unexpected bins %+v", bins)
	}
}

func TestCardsForSequenceNumbersSelection(t *testing.T) {
	snap := engine.Snapshot{
		Mode:  engine.ModeSequence,
		Phase: engine.PhaseActive,
		Items: []engine.Item{
			{ID: "1", Label: "Pour water", Order: 2},
			{ID: "2", Label: "Boil water", Order: 1},
		},
		Selection: []engine.Item{{ID: "2", Label: "Boil water", Order: 1}},
	}
	cards := cardsFor(snap, 0, "1")
	if cards[1].text != "1. Boil water" || cards[1].state != cardSelected {
		t.Fatalf("unexpected selected card %+v", cards[1])
	}
	if cards[0].state != cardHint {
		t.Fatalf("expected hinted card, got %d", cards[0].state)
	}
}

func TestCardsForPairingHidesNames(t *testing.T) {
	snap := engine.Snapshot{
		Mode:     engine.ModePairing,
		Phase:    engine.PhaseActive,
		Items:    []engine.Item{{ID: "1", Label: "Sarah", Detail: "👩", Category: "Daughter"}},
		Partners: []engine.Item{{ID: "1", Label: "Sarah", Detail: "👩", Category: "Daughter"}},
	}
	photos := cardsFor(snap, 0, "")
	if strings.Contains(photos[0].text, "Sarah") {
		t.Fatalf("photo card must not reveal the name: %q", photos[0].text)
	}
	names := cardsFor(snap, 1, "")
	if names[0].text != "Sarah" {
		t.Fatalf("unexpected name card %q", names[0].text)
	}
}

func TestLayoutCardsWraps(t *testing.T) {
	cards := []card{{text: "a"}, {text: "b"}, {text: "c"}}
	one := layoutCards(cards, 0)
	if h := lipgloss.Height(one); h != 3 {
		t.Fatalf("expected a single row, got height %d", h)
	}
	wrapped := layoutCards(cards, 25)
	if h := lipgloss.Height(wrapped); h != 6 {
		t.Fatalf("expected two rows, got height %d", h)
	}
	if layoutCards(nil, 10) != "" {
		t.Fatalf("expected empty layout")
	}
}
