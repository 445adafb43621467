package stats

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/reminisce/internal/model"
	"github.com/verte-zerg/reminisce/internal/store"
)

const (
	defaultTrendWindow = 5
	recentRounds       = 100
)

// Report holds the journal views shown by the history command.
type Report struct {
	Games    []model.GameAggregate
	Sessions []model.SessionAggregate
	Rounds   []model.RoundRecord
	Suggest  []string
}

// BuildReport loads aggregates for the given filters.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	games, err := st.ListGameAggregates(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load game aggregates: %w", err)
	}
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	roundsCfg := cfg
	roundsCfg.Last = recentRounds
	rounds, err := st.ListRounds(ctx, roundsCfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load rounds: %w", err)
	}
	return Report{
		Games:    games,
		Sessions: sessions,
		Rounds:   rounds,
		Suggest:  SuggestGames(games, 2),
	}, nil
}

// GameRows formats per-game aggregates as table cells.
func GameRows(games []model.GameAggregate) ([]string, [][]string) {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			g.Game,
			strconv.Itoa(g.Sessions),
			strconv.Itoa(g.Rounds),
			strconv.Itoa(g.Successes),
			fmt.Sprintf("%.1f%%", Accuracy(g.Successes, g.Rounds)*100),
			strconv.Itoa(g.BestScore),
			(time.Duration(g.DurationMs) * time.Millisecond).Round(time.Second).String(),
			g.LastPlayed.Local().Format("2006-01-02 15:04"),
		})
	}
	return headers(gameColumns), rows
}

// RoundRows formats journal rows as table cells, newest first.
func RoundRows(rounds []model.RoundRecord) ([]string, [][]string) {
	headers := []string{"Resolved", "Game", "Level", "Round", "Result", "Score", "Tries", "Time"}
	rows := make([][]string, 0, len(rounds))
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		result := "missed"
		if r.Success {
			result = "correct"
		}
		rows = append(rows, []string{
			r.ResolvedAt.Local().Format("01-02 15:04"),
			r.Game,
			r.Level,
			r.Title,
			result,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Attempts),
			(time.Duration(r.DurationMs) * time.Millisecond).Round(100 * time.Millisecond).String(),
		})
	}
	return headers, rows
}

// RenderReport prints the per-game table, the accuracy trend and suggestions.
func RenderReport(w io.Writer, report Report, width int) error {
	if len(report.Games) == 0 {
		_, err := fmt.Fprintln(w, "No rounds recorded. Enable recording with `record = true` in the config.")
		return err
	}
	_, rows := GameRows(report.Games)
	for _, line := range renderTable(gameColumns, rows, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(report.Sessions) > 1 {
		trend := RollingAccuracy(report.Sessions, defaultTrendWindow)
		if width > 20 && len(trend) > width-20 {
			trend = trend[len(trend)-(width-20):]
		}
		if _, err := fmt.Fprintf(w, "\nAccuracy trend  %s\n", Sparkline(trend)); err != nil {
			return err
		}
	}
	if len(report.Suggest) > 0 {
		if _, err := fmt.Fprintf(w, "Needs practice  %s\n", strings.Join(report.Suggest, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
