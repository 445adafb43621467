package generator

import "testing"

func TestSeededGeneratorIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 20; i++ {
		if x, y := a.Intn(100), b.Intn(100); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSampleDistinct(t *testing.T) {
	g := NewSeeded(7)
	got := Sample(g, 8, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 indexes, got %d", len(got))
	}
	seen := map[int]bool{}
	for _, v := range got {
		if v < 0 || v >= 8 {
			t.Fatalf("index out of range: %d", v)
		}
		if seen[v] {
			t.Fatalf("duplicate index %d", v)
		}
		seen[v] = true
	}
}

func TestSampleClamps(t *testing.T) {
	g := NewSeeded(1)
	if got := Sample(g, 3, 10); len(got) != 3 {
		t.Fatalf("expected clamp to 3, got %d", len(got))
	}
	if got := Sample(g, 3, 0); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
}
