package games

import (
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

func routineDefinition(routines []content.Routine) Definition {
	deck := make(engine.Rounds, 0, len(routines))
	for _, r := range routines {
		ids := labelIDs(r.Steps)
		items := make([]engine.Item, 0, len(r.Steps))
		for i, step := range r.Steps {
			items = append(items, engine.Item{ID: ids[i], Label: step, Order: i + 1})
		}
		deck = append(deck, engine.Round{
			Title:  r.Name,
			Prompt: "Arrange the steps in the correct order",
			Items:  items,
		})
	}
	return Definition{
		ID:           DailyRoutine,
		Name:         "Daily Routine",
		Description:  "Arrange steps in order",
		Instructions: "Pick the steps one at a time, first step first.",
		Levels: []Level{{
			Name: "Normal",
			Policy: engine.Policy{
				Mode:         engine.ModeSequence,
				Score:        engine.ScoreResetOnWrap,
				Shuffle:      true,
				AdvanceDelay: 2 * time.Second,
				RetryDelay:   1500 * time.Millisecond,
				Feedback: engine.Feedback{
					Success: "Correct! Well done!",
					Retry:   "Not quite. Let's try that order again.",
				},
			},
			Deck: deck,
		}},
	}
}

