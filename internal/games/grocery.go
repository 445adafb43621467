package games

import (
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

func groceryDefinition(g content.Grocery) Definition {
	categories := make([]engine.Category, 0, len(g.Categories))
	for _, c := range g.Categories {
		categories = append(categories, engine.Category{ID: c.ID, Name: c.Name})
	}
	items := make([]engine.Item, 0, len(g.Items))
	for i, it := range g.Items {
		items = append(items, engine.Item{ID: itemID(i), Label: it.Name, Category: it.Category})
	}
	return Definition{
		ID:           GroceryAisle,
		Name:         "Grocery Aisle",
		Description:  "Sort items correctly",
		Instructions: "Pick an item, then the container it belongs in.",
		Levels: []Level{{
			Name: "Normal",
			Policy: engine.Policy{
				Mode:         engine.ModeSort,
				Score:        engine.ScoreResetEachRound,
				Shuffle:      true,
				AdvanceDelay: 2 * time.Second,
				RetryDelay:   300 * time.Millisecond,
				Feedback: engine.Feedback{
					Success:   "Perfect! All sorted correctly!",
					Placed:    "Good sorting!",
					Misplaced: "Not that one. Try another container.",
				},
			},
			Deck: engine.Rounds{{
				Title:      "Grocery Aisle Sorter",
				Prompt:     "Sort items into the correct containers",
				Items:      items,
				Categories: categories,
			}},
		}},
	}
}
