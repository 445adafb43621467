package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPackIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default pack invalid: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	pack, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(pack.Routines) != 0 {
		t.Fatalf("expected empty pack")
	}
}

func TestLoadAndMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	data := `
[[routine]]
name = "Watering Plants"
steps = ["Fill can", "Walk to plants", "Water plants"]

[[person]]
name = "Alice"
photo = "A"
relationship = "Neighbour"

[[person]]
name = "Bob"
photo = "B"
relationship = "Friend"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pack, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	merged := Merge(Default(), pack)
	if len(merged.Routines) != 1 || merged.Routines[0].Name != "Watering Plants" {
		t.Fatalf("expected routine override, got %+v", merged.Routines)
	}
	if len(merged.People) != 2 {
		t.Fatalf("expected 2 people, got %d", len(merged.People))
	}
	if len(merged.Songs) != len(Default().Songs) {
		t.Fatalf("songs should fall back to defaults")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		pack Pack
	}{
		{name: "short routine", pack: Pack{Routines: []Routine{{Name: "x", Steps: []string{"one"}}}}},
		{name: "two correct options", pack: Pack{Songs: []Song{{Title: "s", Options: []SongOption{{Correct: true}, {Correct: true}}}}}},
		{name: "small tray", pack: Pack{Memory: []MemoryItem{{Name: "a"}, {Name: "b"}}}},
		{name: "unknown bin", pack: Pack{Grocery: Grocery{
			Categories: []GroceryCategory{{ID: "fruit"}},
			Items:      []GroceryItem{{Name: "Hammer", Category: "tools"}},
		}}},
		{name: "no odd item", pack: Pack{Puzzles: []Puzzle{{Items: []PuzzleItem{{Name: "a"}, {Name: "b"}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pack.Validate(); !errors.Is(err, ErrInvalidPack) {
				t.Fatalf("expected ErrInvalidPack, got %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidPack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	if err := os.WriteFile(path, []byte("[[song]]\ntitle = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidPack) {
		t.Fatalf("expected ErrInvalidPack, got %v", err)
	}
}
