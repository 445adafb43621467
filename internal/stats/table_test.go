package stats

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	cols := []column{{header: "Game"}, {header: "Rounds", right: true}, {header: "Accuracy", right: true}}
	rows := [][]string{
		{"memory-tray", "12", "97.5%"},
		{"grocery-aisle", "3", "8.0%"},
	}

	lines := renderTable(cols, rows, 0)
	want := []string{
		"Game          Rounds Accuracy",
		"memory-tray       12    97.5%",
		"grocery-aisle      3     8.0%",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestRenderTableUsesDisplayWidth(t *testing.T) {
	lines := renderTable([]column{{header: "Item"}, {header: "N", right: true}}, [][]string{{"🍎", "1"}}, 0)
	if lines[1] != "🍎   1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
}

func TestRenderTableNarrowsFirstColumn(t *testing.T) {
	cols := []column{{header: "Game"}, {header: "N", right: true}}
	lines := renderTable(cols, [][]string{{"faces-and-names", "3"}}, 10)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > 10 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
	if !strings.HasPrefix(lines[1], "faces-") || !strings.HasSuffix(lines[1], "3") {
		t.Fatalf("expected truncated name with count kept, got %q", lines[1])
	}
}

func TestGameColumnsMatchRows(t *testing.T) {
	hdr, _ := GameRows(nil)
	if len(hdr) != len(gameColumns) || hdr[0] != "Game" || hdr[len(hdr)-1] != "Last played" {
		t.Fatalf("unexpected headers %v", hdr)
	}
}
