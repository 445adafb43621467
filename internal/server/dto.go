package server

import (
	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/games"
)

type gameDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Levels       []string `json:"levels"`
}

type itemDTO struct {
	ID       engine.ItemID `json:"id"`
	Label    string        `json:"label"`
	Detail   string        `json:"detail,omitempty"`
	Category string        `json:"category,omitempty"`
	// Correct and Order are only sent once the round is resolved. In sort
	// mode Category is the answer and is withheld until the item is placed.
	Correct *bool `json:"correct,omitempty"`
	Order   int   `json:"order,omitempty"`
}

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type snapshotDTO struct {
	Game             string          `json:"game"`
	Level            string          `json:"level"`
	Phase            string          `json:"phase"`
	Outcome          string          `json:"outcome"`
	Mode             string          `json:"mode"`
	Title            string          `json:"title"`
	Prompt           string          `json:"prompt"`
	Items            []itemDTO       `json:"items"`
	Partners         []itemDTO       `json:"partners,omitempty"`
	Categories       []categoryDTO   `json:"categories,omitempty"`
	Selection        []engine.ItemID `json:"selection"`
	PartnerSelection []engine.ItemID `json:"partnerSelection,omitempty"`
	Matched          []engine.ItemID `json:"matched"`
	Eligible         []engine.ItemID `json:"eligibleItems"`
	Rejected         engine.ItemID   `json:"rejected,omitempty"`
	Score            int             `json:"score"`
	Round            int             `json:"round"`
	Position         int             `json:"position"`
	Total            int             `json:"total,omitempty"`
	Cycle            int             `json:"cycle"`
	Studying         bool            `json:"studying"`
	Study            []itemDTO       `json:"study,omitempty"`
	Feedback         string          `json:"feedbackMessage"`
	Generation       uint64          `json:"generation"`
}

func toGameDTO(def games.Definition) gameDTO {
	levels := make([]string, 0, len(def.Levels))
	for _, lvl := range def.Levels {
		levels = append(levels, lvl.Name)
	}
	return gameDTO{
		ID:           def.ID,
		Name:         def.Name,
		Description:  def.Description,
		Instructions: def.Instructions,
		Levels:       levels,
	}
}

func toSnapshotDTO(s *games.Session) snapshotDTO {
	snap := s.Engine().Snapshot()
	reveal := snap.Phase == engine.PhaseResolved
	dto := snapshotDTO{
		Game:             s.Definition().ID,
		Level:            s.LevelName(),
		Phase:            snap.Phase.String(),
		Outcome:          snap.Outcome.String(),
		Mode:             snap.Mode.String(),
		Title:            snap.Title,
		Prompt:           snap.Prompt,
		Items:            toItemDTOs(snap.Items, reveal),
		Partners:         toItemDTOs(snap.Partners, false),
		Selection:        itemIDs(snap.Selection),
		PartnerSelection: itemIDs(snap.PartnerSelection),
		Matched:          append([]engine.ItemID{}, snap.Matched...),
		Eligible:         itemIDs(snap.Eligible),
		Rejected:         snap.Rejected,
		Score:            snap.Score,
		Round:            snap.Round,
		Position:         snap.Position,
		Total:            snap.Total,
		Cycle:            snap.Cycle,
		Studying:         snap.Studying,
		Study:            toItemDTOs(snap.Study, false),
		Feedback:         snap.Feedback,
		Generation:       snap.Generation,
	}
	if snap.Mode == engine.ModeSort {
		for i, it := range snap.Items {
			if !reveal && !snap.IsMatched(it.ID) {
				dto.Items[i].Category = ""
			}
		}
		for _, cat := range snap.Categories {
			dto.Categories = append(dto.Categories, categoryDTO{ID: cat.ID, Name: cat.Name})
		}
	}
	return dto
}

func toItemDTOs(items []engine.Item, reveal bool) []itemDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		dto := itemDTO{ID: it.ID, Label: it.Label, Detail: it.Detail, Category: it.Category}
		if reveal {
			correct := it.Correct
			dto.Correct = &correct
			dto.Order = it.Order
		}
		out = append(out, dto)
	}
	return out
}

func itemIDs(items []engine.Item) []engine.ItemID {
	out := make([]engine.ItemID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
