package games

import (
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/generator"
)

const (
	easyTraySize = 3
	hardTraySize = 5
)

// trayDeck draws a fresh random tray for every round and never wraps.
type trayDeck struct {
	items []engine.Item
	size  int
	hard  bool
}

func (d trayDeck) Len() int { return engine.Endless }

func (d trayDeck) Round(_ int, rnd engine.Source) engine.Round {
	picks := generator.Sample(rnd, len(d.items), d.size)
	onTray := make(map[engine.ItemID]bool, len(picks))
	tray := make([]engine.Item, 0, len(picks))
	for _, idx := range picks {
		it := d.items[idx]
		onTray[it.ID] = true
		tray = append(tray, it)
	}

	if d.hard {
		items := make([]engine.Item, 0, len(d.items))
		for _, it := range d.items {
			it.Correct = onTray[it.ID]
			items = append(items, it)
		}
		return engine.Round{
			Title:  "Memory Tray",
			Prompt: "Select every item that was on the tray, then check your answer.",
			Items:  items,
			Study:  tray,
		}
	}

	correct := tray[0]
	correct.Correct = true
	off := make([]engine.Item, 0, len(d.items))
	for _, it := range d.items {
		if !onTray[it.ID] {
			off = append(off, it)
		}
	}
	items := []engine.Item{correct}
	if len(off) > 0 {
		items = append(items, off[rnd.Intn(len(off))])
	}
	return engine.Round{
		Title:  "Memory Tray",
		Prompt: "Which of these was on the tray?",
		Items:  items,
		Study:  tray,
	}
}

func memoryDefinition(objects []content.MemoryItem, study time.Duration) Definition {
	items := make([]engine.Item, 0, len(objects))
	for i, obj := range objects {
		items = append(items, engine.Item{ID: itemID(i), Label: obj.Name})
	}
	feedback := engine.Feedback{
		Success: "Excellent memory!",
		Failure: "Good try! Let's try again.",
	}
	return Definition{
		ID:           MemoryTray,
		Name:         "Memory Tray",
		Description:  "Remember the items",
		Instructions: "Study the tray, then answer once it is hidden.",
		Levels: []Level{
			{
				Name: "Easy",
				Policy: engine.Policy{
					Mode:         engine.ModeSingle,
					Score:        engine.ScoreKeep,
					Shuffle:      true,
					AdvanceDelay: 2 * time.Second,
					StudyDelay:   study,
					Feedback:     feedback,
				},
				Deck: trayDeck{items: items, size: easyTraySize},
			},
			{
				Name: "Hard",
				Policy: engine.Policy{
					Mode:         engine.ModeSet,
					Score:        engine.ScoreKeep,
					Shuffle:      true,
					AdvanceDelay: 2 * time.Second,
					StudyDelay:   study,
					Feedback:     feedback,
				},
				Deck: trayDeck{items: items, size: hardTraySize, hard: true},
			},
		},
	}
}
