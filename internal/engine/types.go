// Package engine implements the round state machine shared by every mini-game.
package engine

import "time"

// ItemID identifies an Item within a round.
type ItemID string

// Item is one immutable unit of game content.
type Item struct {
	ID       ItemID
	Label    string
	Detail   string
	Category string
	// Order is the 1-based canonical position used by sequence mode.
	Order int
	// Correct marks the designated answer in single mode and target set
	// membership in set mode.
	Correct bool
}

// Category is a sort-mode destination.
type Category struct {
	ID   string
	Name string
}

// Round is the dataset for one round.
type Round struct {
	Title      string
	Prompt     string
	Items      []Item
	Categories []Category
	// Study holds items shown before selections are accepted.
	Study []Item
}

// Deck produces rounds for an engine.
type Deck interface {
	// Len reports the number of entries per cycle, or Endless.
	Len() int
	Round(index int, rnd Source) Round
}

// Rounds is a fixed deck.
type Rounds []Round

// Len implements Deck.
func (r Rounds) Len() int { return len(r) }

// Round implements Deck.
func (r Rounds) Round(index int, _ Source) Round {
	return r[index%len(r)]
}

// Source supplies randomness for shuffles and draws. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Mode selects the evaluation rule.
type Mode int

const (
	ModeSequence Mode = iota
	ModeSingle
	ModeSort
	ModePairing
	ModeSet
)

func (m Mode) String() string {
	switch m {
	case ModeSequence:
		return "sequence"
	case ModeSingle:
		return "single"
	case ModeSort:
		return "sort"
	case ModePairing:
		return "pairing"
	case ModeSet:
		return "set"
	default:
		return "unknown"
	}
}

// Phase is the round's lifecycle position.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseEvaluating
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

var validTransitions = map[Phase][]Phase{
	PhaseActive:     {PhaseActive, PhaseEvaluating, PhaseResolved},
	PhaseEvaluating: {PhaseResolved, PhaseActive},
	PhaseResolved:   {},
}

// CanTransitionTo reports whether the edge p -> target exists within one RoundState.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range validTransitions[p] {
		if phase == target {
			return true
		}
	}
	return false
}

// Outcome is the result of the latest evaluation.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// ScorePolicy decides when the score returns to zero.
type ScorePolicy int

const (
	// ScoreKeep accumulates for the whole session.
	ScoreKeep ScorePolicy = iota
	// ScoreResetEachRound zeroes the score on every advance.
	ScoreResetEachRound
	// ScoreResetOnWrap zeroes the score when the deck wraps to its first entry.
	ScoreResetOnWrap
)

// Feedback holds the scripted messages shown after evaluations.
type Feedback struct {
	Success   string
	Failure   string
	Retry     string
	Placed    string
	Misplaced string
	Matched   string
}

// Policy configures one engine instantiation.
type Policy struct {
	Mode         Mode
	Score        ScorePolicy
	Shuffle      bool
	AdvanceDelay time.Duration
	// RetryDelay is the sequence retry delay and the sort rejection delay.
	RetryDelay time.Duration
	StudyDelay time.Duration
	Feedback   Feedback
}

// Scaled returns a copy of p with every delay multiplied by pace.
func (p Policy) Scaled(pace float64) Policy {
	if pace <= 0 || pace == 1 {
		return p
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * pace)
	}
	p.AdvanceDelay = scale(p.AdvanceDelay)
	p.RetryDelay = scale(p.RetryDelay)
	p.StudyDelay = scale(p.StudyDelay)
	return p
}

// Snapshot is a read-only copy of the engine state for a rendering surface.
type Snapshot struct {
	Phase      Phase
	Outcome    Outcome
	Mode       Mode
	Title      string
	Prompt     string
	Items      []Item
	Partners   []Item
	Categories []Category

	Selection        []Item
	PartnerSelection []Item
	Matched          []ItemID
	Eligible         []Item
	Rejected         ItemID

	Score    int
	Round    int
	Position int
	Total    int
	Cycle    int

	Studying bool
	Study    []Item
	Feedback string

	Generation uint64
}

// IsMatched reports whether id is resolved.
func (s Snapshot) IsMatched(id ItemID) bool {
	for _, m := range s.Matched {
		if m == id {
			return true
		}
	}
	return false
}

// IsSelected reports whether id is in the primary selection.
func (s Snapshot) IsSelected(id ItemID) bool {
	return containsItem(s.Selection, id)
}

// IsPartnerSelected reports whether id is in the pairing partner selection.
func (s Snapshot) IsPartnerSelected(id ItemID) bool {
	return containsItem(s.PartnerSelection, id)
}

// Result describes one resolved round.
type Result struct {
	Mode       Mode
	Title      string
	Round      int
	Cycle      int
	Outcome    Outcome
	Score      int
	Attempts   int
	StartedAt  time.Time
	ResolvedAt time.Time
}

func containsItem(items []Item, id ItemID) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
