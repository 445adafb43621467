// Package games defines the six mini-games on top of the round engine.
package games

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
)

// Game identifiers.
const (
	DailyRoutine      = "daily-routine"
	MusicalTimeTravel = "musical-time-travel"
	MemoryTray        = "memory-tray"
	GroceryAisle      = "grocery-aisle"
	FacesAndNames     = "faces-and-names"
	SpotTheOddOne     = "spot-the-odd-one"
)

// DefaultStudyDelay is how long the memory tray stays visible.
const DefaultStudyDelay = 30 * time.Second

// ErrUnknownLevel is returned for a difficulty level the game does not have.
var ErrUnknownLevel = errors.New("unknown difficulty level")

// Level is one difficulty setting of a game.
type Level struct {
	Name   string
	Policy engine.Policy
	Deck   engine.Deck
}

// Definition describes a game and its levels.
type Definition struct {
	ID           string
	Name         string
	Description  string
	Instructions string
	Levels       []Level
}

// Options tune every definition in a catalog.
type Options struct {
	// Pace multiplies every delay. Zero means 1.
	Pace float64
	// StudyDelay is how long the tray is shown. Zero means DefaultStudyDelay.
	// A negative value keeps the tray up until the player is ready.
	StudyDelay time.Duration
}

// Catalog builds the six game definitions from a content pack merged over
// the built-in datasets.
func Catalog(pack content.Pack, opts Options) []Definition {
	merged := content.Merge(content.Default(), pack)
	switch {
	case opts.StudyDelay == 0:
		opts.StudyDelay = DefaultStudyDelay
	case opts.StudyDelay < 0:
		opts.StudyDelay = 0
	}
	defs := []Definition{
		routineDefinition(merged.Routines),
		musicDefinition(merged.Songs),
		memoryDefinition(merged.Memory, opts.StudyDelay),
		groceryDefinition(merged.Grocery),
		facesDefinition(merged.People),
		oddOneDefinition(merged.Puzzles),
	}
	for i := range defs {
		for j := range defs[i].Levels {
			defs[i].Levels[j].Policy = defs[i].Levels[j].Policy.Scaled(opts.Pace)
		}
	}
	return defs
}

// Lookup finds a definition by id or case-insensitive name.
func Lookup(defs []Definition, key string) (Definition, bool) {
	key = strings.TrimSpace(key)
	for _, def := range defs {
		if def.ID == key || strings.EqualFold(def.Name, key) {
			return def, true
		}
	}
	return Definition{}, false
}

// LevelIndex resolves a level by name or 1-based number.
func (d Definition) LevelIndex(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	for i, lvl := range d.Levels {
		if strings.EqualFold(lvl.Name, name) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(d.Levels) {
		return n - 1, nil
	}
	return 0, ErrUnknownLevel
}

func itemID(i int) engine.ItemID {
	return engine.ItemID(strconv.Itoa(i + 1))
}

// labelIDs names items after their text. Used where the dataset order is
// the answer, so an id must not give away an item's position.
func labelIDs(labels []string) []engine.ItemID {
	ids := make([]engine.ItemID, len(labels))
	seen := make(map[string]int, len(labels))
	for i, label := range labels {
		id := slug(label)
		if id == "" {
			id = "item"
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		ids[i] = engine.ItemID(id)
	}
	return ids
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			dash = true
			continue
		}
		if dash && b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
		dash = false
	}
	return b.String()
}
