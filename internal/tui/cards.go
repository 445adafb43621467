package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/reminisce/internal/engine"
)

const (
	minCardWidth = 6
	maxCardWidth = 24
)

type cardState int

const (
	cardIdle cardState = iota
	cardSelected
	cardMatched
	cardRejected
	cardCorrect
	cardWrong
	cardHint
	cardDone
)

type card struct {
	text   string
	state  cardState
	cursor bool
}

// cardsFor builds the cards of one pane. pane 1 holds partners in pairing
// mode and category bins in sort mode.
func cardsFor(snap engine.Snapshot, pane int, hint engine.ItemID) []card {
	if pane == 1 {
		switch snap.Mode {
		case engine.ModePairing:
			return partnerCards(snap)
		case engine.ModeSort:
			return binCards(snap)
		}
		return nil
	}
	resolved := snap.Phase == engine.PhaseResolved
	out := make([]card, 0, len(snap.Items))
	for _, it := range snap.Items {
		c := card{text: itemText(snap.Mode, it)}
		switch {
		case snap.Mode == engine.ModeSort && snap.IsMatched(it.ID):
			c.state = cardDone
		case snap.Mode == engine.ModePairing && snap.IsMatched(it.ID):
			c.state = cardMatched
			c.text = it.Detail + " " + it.Label
		case it.ID == snap.Rejected:
			c.state = cardRejected
		case resolved && outcomeCard(snap, it) != cardIdle:
			c.state = outcomeCard(snap, it)
		case snap.IsSelected(it.ID):
			c.state = cardSelected
			if snap.Mode == engine.ModeSequence {
				c.text = fmt.Sprintf("%d. %s", selectionIndex(snap.Selection, it.ID)+1, it.Label)
			}
		case it.ID == hint:
			c.state = cardHint
		}
		out = append(out, c)
	}
	return out
}

func outcomeCard(snap engine.Snapshot, it engine.Item) cardState {
	switch snap.Mode {
	case engine.ModeSingle, engine.ModeSet:
		selected := snap.IsSelected(it.ID)
		switch {
		case selected && it.Correct:
			return cardCorrect
		case selected && !it.Correct:
			return cardWrong
		case it.Correct:
			return cardHint
		}
	case engine.ModeSequence:
		if snap.IsSelected(it.ID) {
			return cardCorrect
		}
	}
	return cardIdle
}

func partnerCards(snap engine.Snapshot) []card {
	out := make([]card, 0, len(snap.Partners))
	for _, it := range snap.Partners {
		c := card{text: it.Label}
		switch {
		case snap.IsMatched(it.ID):
			c.state = cardMatched
		case snap.IsPartnerSelected(it.ID):
			c.state = cardSelected
		}
		out = append(out, c)
	}
	return out
}

func binCards(snap engine.Snapshot) []card {
	placed := make(map[string]int, len(snap.Categories))
	for _, it := range snap.Items {
		if snap.IsMatched(it.ID) {
			placed[it.Category]++
		}
	}
	out := make([]card, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		out = append(out, card{text: fmt.Sprintf("%s (%d)", cat.Name, placed[cat.ID])})
	}
	return out
}

func itemText(mode engine.Mode, it engine.Item) string {
	if mode == engine.ModePairing {
		// Photos show the relationship, never the name.
		return strings.TrimSpace(it.Detail + " " + it.Category)
	}
	if it.Detail != "" {
		return it.Detail + " " + it.Label
	}
	return it.Label
}

func selectionIndex(sel []engine.Item, id engine.ItemID) int {
	for i, it := range sel {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// fitCell pads or truncates value to exactly width terminal cells.
func fitCell(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) > width {
		value = runewidth.Truncate(value, width, "…")
	}
	return runewidth.FillRight(value, width)
}

// cardWidth picks one text width for a pane so the grid stays even.
func cardWidth(cards []card) int {
	width := minCardWidth
	for _, c := range cards {
		if w := runewidth.StringWidth(c.text); w > width {
			width = w
		}
	}
	if width > maxCardWidth {
		width = maxCardWidth
	}
	return width
}

func renderCard(c card, width int) string {
	style := cardStyle
	if fg, ok := cardColors[c.state]; ok {
		style = style.Foreground(fg).BorderForeground(fg)
	}
	if c.state == cardDone {
		style = style.Faint(true)
	}
	if c.cursor {
		style = style.BorderForeground(cursorColor).Bold(true)
	}
	return style.Render(fitCell(c.text, width))
}

// layoutCards renders cards left to right and wraps onto a new row when the
// next card would exceed maxWidth.
func layoutCards(cards []card, maxWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	width := cardWidth(cards)
	var rows []string
	var line []string
	lineWidth := 0
	for _, c := range cards {
		rendered := renderCard(c, width)
		w := lipgloss.Width(rendered)
		if maxWidth > 0 && lineWidth+w > maxWidth && len(line) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = line[:0]
			lineWidth = 0
		}
		line = append(line, rendered)
		lineWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
