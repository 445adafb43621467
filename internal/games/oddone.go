package games

import (
	"fmt"
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

func oddOneDefinition(puzzles []content.Puzzle) Definition {
	deck := make(engine.Rounds, 0, len(puzzles))
	for n, pz := range puzzles {
		labels := make([]string, len(pz.Items))
		for i, it := range pz.Items {
			labels[i] = it.Name
		}
		ids := labelIDs(labels)
		items := make([]engine.Item, 0, len(pz.Items))
		for i, it := range pz.Items {
			items = append(items, engine.Item{
				ID:       ids[i],
				Label:    it.Name,
				Detail:   it.Emoji,
				Category: it.Kind,
				Correct:  it.Odd,
			})
		}
		deck = append(deck, engine.Round{
			Title:  fmt.Sprintf("Puzzle %d", n+1),
			Prompt: "Which one is different from the others?",
			Items:  items,
		})
	}
	return Definition{
		ID:           SpotTheOddOne,
		Name:         "Spot the Odd One",
		Description:  "Find the different item",
		Instructions: "Pick the one item that does not belong.",
		Levels: []Level{{
			Name: "Normal",
			Policy: engine.Policy{
				Mode:         engine.ModeSingle,
				Score:        engine.ScoreResetOnWrap,
				Shuffle:      true,
				AdvanceDelay: 2500 * time.Millisecond,
				Feedback: engine.Feedback{
					Success: "Correct! Well spotted!",
					Failure: "Not quite. Look for the one that's different from the others.",
				},
			},
			Deck: deck,
		}},
	}
}
