package games

import (
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

func facesDefinition(people []content.Person) Definition {
	items := make([]engine.Item, 0, len(people))
	for i, p := range people {
		items = append(items, engine.Item{
			ID:       itemID(i),
			Label:    p.Name,
			Detail:   p.Photo,
			Category: p.Relationship,
		})
	}
	return Definition{
		ID:           FacesAndNames,
		Name:         "Faces & Names",
		Description:  "Match photos to names",
		Instructions: "Pick a photo and then the matching name, in either order.",
		Levels: []Level{{
			Name: "Normal",
			Policy: engine.Policy{
				Mode:         engine.ModePairing,
				Score:        engine.ScoreResetEachRound,
				Shuffle:      true,
				AdvanceDelay: 2 * time.Second,
				Feedback: engine.Feedback{
					Success: "Perfect! All matches found!",
					Matched: "That's a match!",
				},
			},
			Deck: engine.Rounds{{
				Title:  "Faces & Names",
				Prompt: "Match each photo to a name",
				Items:  items,
			}},
		}},
	}
}
