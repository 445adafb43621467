// Package content loads game datasets from TOML content packs.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Pack holds the datasets for every game. Empty sections fall back to the
// built-in defaults when merged.
type Pack struct {
	Routines []Routine    `toml:"routine"`
	Songs    []Song       `toml:"song"`
	Memory   []MemoryItem `toml:"memory-item"`
	Grocery  Grocery      `toml:"grocery"`
	People   []Person     `toml:"person"`
	Puzzles  []Puzzle     `toml:"puzzle"`
}

// Routine is an ordered list of steps.
type Routine struct {
	Name  string   `toml:"name"`
	Steps []string `toml:"steps"`
}

// Song is a lyric prompt with answer options.
type Song struct {
	Title   string       `toml:"title"`
	Lyric   string       `toml:"lyric"`
	Era     string       `toml:"era"`
	Options []SongOption `toml:"option"`
}

// SongOption is one candidate continuation.
type SongOption struct {
	Text    string `toml:"text"`
	Correct bool   `toml:"correct"`
}

// MemoryItem is an object that can appear on the memory tray.
type MemoryItem struct {
	Name string `toml:"name"`
}

// Grocery holds the sorter bins and items.
type Grocery struct {
	Categories []GroceryCategory `toml:"category"`
	Items      []GroceryItem     `toml:"item"`
}

// GroceryCategory is one bin.
type GroceryCategory struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// GroceryItem belongs to exactly one bin.
type GroceryItem struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Person pairs a photo with a name.
type Person struct {
	Name         string `toml:"name"`
	Photo        string `toml:"photo"`
	Relationship string `toml:"relationship"`
}

// Puzzle is an odd-one-out set with exactly one odd item.
type Puzzle struct {
	Items []PuzzleItem `toml:"item"`
}

// PuzzleItem is one tile of a puzzle.
type PuzzleItem struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Emoji string `toml:"emoji"`
	Odd   bool   `toml:"odd"`
}

// Minimum memory items: the hard tray plus one distractor.
const minMemoryItems = 6

// ErrInvalidPack reports a content pack that cannot drive a game.
var ErrInvalidPack = errors.New("invalid content pack")

// Load reads a TOML content pack. Missing file is not an error.
func Load(path string) (Pack, error) {
	if path == "" {
		return Pack{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Pack{}, nil
		}
		return Pack{}, fmt.Errorf("failed to stat content pack: %w", err)
	}
	var pack Pack
	if _, err := toml.DecodeFile(path, &pack); err != nil {
		return Pack{}, fmt.Errorf("failed to decode content pack: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

// Merge returns base with every non-empty section of override applied.
func Merge(base, override Pack) Pack {
	out := base
	if len(override.Routines) > 0 {
		out.Routines = override.Routines
	}
	if len(override.Songs) > 0 {
		out.Songs = override.Songs
	}
	if len(override.Memory) > 0 {
		out.Memory = override.Memory
	}
	if len(override.Grocery.Items) > 0 {
		out.Grocery = override.Grocery
	}
	if len(override.People) > 0 {
		out.People = override.People
	}
	if len(override.Puzzles) > 0 {
		out.Puzzles = override.Puzzles
	}
	return out
}

// Validate checks every non-empty section.
func (p Pack) Validate() error {
	var problems []string
	for i, r := range p.Routines {
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, fmt.Sprintf("routine %d: name is empty", i+1))
		}
		if len(r.Steps) < 2 {
			problems = append(problems, fmt.Sprintf("routine %q: needs at least 2 steps", r.Name))
		}
	}
	for _, s := range p.Songs {
		if countCorrect(s.Options) != 1 {
			problems = append(problems, fmt.Sprintf("song %q: needs exactly one correct option", s.Title))
		}
	}
	if len(p.Memory) > 0 && len(p.Memory) < minMemoryItems {
		problems = append(problems, fmt.Sprintf("memory: needs at least %d items", minMemoryItems))
	}
	if len(p.Grocery.Items) > 0 {
		bins := map[string]struct{}{}
		for _, c := range p.Grocery.Categories {
			bins[c.ID] = struct{}{}
		}
		for _, it := range p.Grocery.Items {
			if _, ok := bins[it.Category]; !ok {
				problems = append(problems, fmt.Sprintf("grocery %q: unknown category %q", it.Name, it.Category))
			}
		}
	}
	if len(p.People) == 1 {
		problems = append(problems, "people: needs at least 2 people")
	}
	for i, pz := range p.Puzzles {
		odd := 0
		for _, it := range pz.Items {
			if it.Odd {
				odd++
			}
		}
		if odd != 1 {
			problems = append(problems, fmt.Sprintf("puzzle %d: needs exactly one odd item", i+1))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPack, strings.Join(problems, "; "))
	}
	return nil
}

func countCorrect(opts []SongOption) int {
	n := 0
	for _, o := range opts {
		if o.Correct {
			n++
		}
	}
	return n
}
