package games

import (
	"fmt"
	"time"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

func musicDefinition(songs []content.Song) Definition {
	deck := make(engine.Rounds, 0, len(songs))
	for _, s := range songs {
		labels := make([]string, len(s.Options))
		for i, opt := range s.Options {
			labels[i] = opt.Text
		}
		ids := labelIDs(labels)
		items := make([]engine.Item, 0, len(s.Options))
		for i, opt := range s.Options {
			items = append(items, engine.Item{ID: ids[i], Label: opt.Text, Correct: opt.Correct})
		}
		prompt := s.Lyric
		if s.Era != "" {
			prompt = fmt.Sprintf("%s (%s)", s.Lyric, s.Era)
		}
		deck = append(deck, engine.Round{Title: s.Title, Prompt: prompt, Items: items})
	}
	return Definition{
		ID:           MusicalTimeTravel,
		Name:         "Musical Time Travel",
		Description:  "Finish the lyric",
		Instructions: "Choose the line that comes next in the song.",
		Levels: []Level{{
			Name: "Normal",
			Policy: engine.Policy{
				Mode:         engine.ModeSingle,
				Score:        engine.ScoreResetOnWrap,
				Shuffle:      true,
				AdvanceDelay: 2500 * time.Millisecond,
				Feedback: engine.Feedback{
					Success: "Correct! Beautiful!",
					Failure: "Not quite, but that's okay!",
				},
			},
			Deck: deck,
		}},
	}
}
