package games

import (
	"fmt"

	"github.com/verte-zerg/reminisce/internal/engine"
)

// Session is one live game instance: a definition, its current level and
// the engine that owns the RoundState.
type Session struct {
	def    Definition
	level  int
	engine *engine.Engine
}

// NewSession starts def at its first level.
func NewSession(def Definition, opts ...engine.Option) (*Session, error) {
	if len(def.Levels) == 0 {
		return nil, fmt.Errorf("game %s has no levels", def.ID)
	}
	lvl := def.Levels[0]
	eng, err := engine.New(lvl.Policy, lvl.Deck, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", def.ID, err)
	}
	return &Session{def: def, engine: eng}, nil
}

// Definition returns the game being played.
func (s *Session) Definition() Definition {
	return s.def
}

// Engine returns the round engine.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Level returns the current level index.
func (s *Session) Level() int {
	return s.level
}

// LevelName returns the current level name.
func (s *Session) LevelName() string {
	return s.def.Levels[s.level].Name
}

// HasLevels reports whether the game offers a difficulty switch.
func (s *Session) HasLevels() bool {
	return len(s.def.Levels) > 1
}

// ChangeDifficulty restarts the game at the given level with round 1 and
// score 0.
func (s *Session) ChangeDifficulty(level int) error {
	if level < 0 || level >= len(s.def.Levels) {
		return fmt.Errorf("level %d: %w", level+1, ErrUnknownLevel)
	}
	lvl := s.def.Levels[level]
	if err := s.engine.Load(lvl.Policy, lvl.Deck); err != nil {
		return fmt.Errorf("failed to load level %s: %w", lvl.Name, err)
	}
	s.level = level
	return nil
}

// ToggleDifficulty moves to the next level, wrapping to the first.
func (s *Session) ToggleDifficulty() error {
	if !s.HasLevels() {
		return nil
	}
	return s.ChangeDifficulty((s.level + 1) % len(s.def.Levels))
}
