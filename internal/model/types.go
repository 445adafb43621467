// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines game session settings.
type PlayConfig struct {
	Game         string
	Level        string
	Pace         float64
	Seed         int64
	StudySeconds int
	Record       bool
	Content      string
}

// ServeConfig defines HTTP surface settings.
type ServeConfig struct {
	Addr   string
	Origin string
}

// HistoryConfig defines filters for journal output.
type HistoryConfig struct {
	Game  string
	Since *time.Time
	Last  int
}

// RoundRecord captures one resolved round in the journal.
type RoundRecord struct {
	SessionID  string
	Game       string
	Level      string
	Mode       string
	Title      string
	Round      int
	Cycle      int
	Success    bool
	Score      int
	Attempts   int
	StartedAt  time.Time
	ResolvedAt time.Time
	DurationMs int64
}

// GameAggregate summarizes journal rows for one game.
type GameAggregate struct {
	Game       string
	Sessions   int
	Rounds     int
	Successes  int
	BestScore  int
	DurationMs int64
	LastPlayed time.Time
}

// SessionAggregate summarizes one play session.
type SessionAggregate struct {
	SessionID string
	Game      string
	Level     string
	Rounds    int
	Successes int
	StartedAt time.Time
	EndedAt   time.Time
}
