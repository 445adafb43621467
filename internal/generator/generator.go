// Package generator provides the random source behind shuffles and tray draws.
package generator

import (
	"math/rand"
	"time"
)

// Generator wraps a seeded random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed so sessions can be replayed.
// A zero seed falls back to the current time.
func NewSeeded(seed int64) *Generator {
	if seed == 0 {
		return New()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform value in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Shuffle permutes n elements through swap.
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	g.rnd.Shuffle(n, swap)
}

// Sample draws k distinct indexes in [0, n) using any shuffling source.
func Sample(src interface{ Shuffle(int, func(i, j int)) }, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	src.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	return idx[:k]
}
