// Package stats contains journal calculations and reporting.
package stats

import (
	"sort"
	"strings"

	"github.com/verte-zerg/reminisce/internal/model"
)

var trendBars = []rune("▁▂▃▄▅▆▇█")

// Accuracy returns the share of successful rounds in [0, 1].
func Accuracy(successes, rounds int) float64 {
	if rounds <= 0 {
		return 0
	}
	return float64(successes) / float64(rounds)
}

// RollingAccuracy returns, for each session, the accuracy in percent over
// that session and up to window-1 sessions before it. Sessions are weighted
// by the rounds they played.
func RollingAccuracy(sessions []model.SessionAggregate, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(sessions))
	var rounds, successes int
	for i, s := range sessions {
		rounds += s.Rounds
		successes += s.Successes
		if i >= window {
			rounds -= sessions[i-window].Rounds
			successes -= sessions[i-window].Successes
		}
		out[i] = Accuracy(successes, rounds) * 100
	}
	return out
}

// Sparkline draws percentages on a fixed 0-100 scale, one bar per value.
func Sparkline(percents []float64) string {
	var b strings.Builder
	top := len(trendBars) - 1
	for _, p := range percents {
		idx := int(p / 100 * float64(top))
		b.WriteRune(trendBars[min(max(idx, 0), top)])
	}
	return b.String()
}

// SuggestGames returns the lowest-accuracy games, weakest first.
func SuggestGames(aggs []model.GameAggregate, top int) []string {
	if len(aggs) == 0 {
		return nil
	}
	ranked := make([]model.GameAggregate, len(aggs))
	copy(ranked, aggs)
	sort.SliceStable(ranked, func(i, j int) bool {
		ai := Accuracy(ranked[i].Successes, ranked[i].Rounds)
		aj := Accuracy(ranked[j].Successes, ranked[j].Rounds)
		if ai == aj {
			return ranked[i].Game < ranked[j].Game
		}
		return ai < aj
	})
	if top <= 0 || top > len(ranked) {
		top = len(ranked)
	}
	out := make([]string, 0, top)
	for _, agg := range ranked[:top] {
		out = append(out, agg.Game)
	}
	return out
}
