package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minNameWidth keeps game ids readable when the table is narrowed.
const minNameWidth = 6

type column struct {
	header string
	right  bool
}

var gameColumns = []column{
	{header: "Game"},
	{header: "Sessions", right: true},
	{header: "Rounds", right: true},
	{header: "Correct", right: true},
	{header: "Accuracy", right: true},
	{header: "Best", right: true},
	{header: "Time", right: true},
	{header: "Last played"},
}

func headers(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.header
	}
	return out
}

// columnWidths sizes every column to its widest cell. When the table is
// wider than maxWidth the first column gives up the difference.
func columnWidths(cols []column, rows [][]string, maxWidth int) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.header)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	if maxWidth <= 0 || len(widths) == 0 {
		return widths
	}
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	if over := total - maxWidth; over > 0 {
		widths[0] = max(widths[0]-over, min(widths[0], minNameWidth))
	}
	return widths
}

func renderTable(cols []column, rows [][]string, maxWidth int) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := columnWidths(cols, rows, maxWidth)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(cols, headers(cols), widths, maxWidth))
	for _, row := range rows {
		lines = append(lines, renderRow(cols, row, widths, maxWidth))
	}
	return lines
}

func renderRow(cols []column, cells []string, widths []int, maxWidth int) string {
	var b strings.Builder
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = runewidth.Truncate(cells[i], widths[i], "…")
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if c.right {
			b.WriteString(runewidth.FillLeft(cell, widths[i]))
		} else if i < len(cols)-1 {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		} else {
			b.WriteString(cell)
		}
	}
	line := b.String()
	if maxWidth > 0 {
		line = runewidth.Truncate(line, maxWidth, "")
	}
	return line
}
