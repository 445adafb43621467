package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Endless is the Deck length of a generated deck that never wraps.
const Endless = -1

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for shuffles and draws.
func WithSource(rnd Source) Option {
	return func(e *Engine) {
		if rnd != nil {
			e.rnd = rnd
		}
	}
}

// WithScheduler sets the scheduler that runs deferred transitions.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithObserver registers a callback invoked on every resolution.
func WithObserver(fn func(Result)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// WithClock overrides the time source used for results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine owns the live RoundState of one game instance. It is not safe for
// concurrent use; callers serialize events and timer firings.
type Engine struct {
	policy   Policy
	deck     Deck
	rnd      Source
	sched    Scheduler
	observer func(Result)
	now      func() time.Time

	state      *roundState
	generation uint64
	seq        uint64
	releaseSeq uint64

	score    int
	round    int
	position int
	cycle    int
}

type roundState struct {
	round    Round
	items    []Item
	partners []Item
	byID     map[ItemID]Item

	phase     Phase
	outcome   Outcome
	selection []Item
	partner   []Item
	matched   []ItemID
	rejected  ItemID
	studying  bool
	feedback  string
	attempts  int
	startedAt time.Time
}

// New validates the deck and starts the first round.
func New(policy Policy, deck Deck, opts ...Option) (*Engine, error) {
	e := &Engine{
		sched: nopScheduler{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if err := e.Load(policy, deck); err != nil {
		return nil, err
	}
	return e, nil
}

// Load replaces the policy and deck, then restarts from the first entry.
func (e *Engine) Load(policy Policy, deck Deck) error {
	if deck == nil || deck.Len() == 0 || deck.Len() < Endless {
		return ErrEmptyDeck
	}
	e.policy = policy
	e.deck = deck
	e.Start()
	return nil
}

// Start begins a fresh session at the first deck entry.
func (e *Engine) Start() {
	e.position = 0
	e.round = 1
	e.cycle = 1
	e.score = 0
	e.begin()
}

// Reset replaces the current RoundState with a fresh one for the same entry.
func (e *Engine) Reset() {
	e.score = 0
	e.begin()
}

// Policy returns the active policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Generation returns the generation of the live RoundState.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Select applies one primary selection event.
func (e *Engine) Select(id ItemID) error {
	st := e.state
	item, ok := st.byID[id]
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownItem)
	}
	if !st.accepting() {
		return nil
	}

	switch e.policy.Mode {
	case ModeSequence:
		if containsItem(st.selection, id) {
			return nil
		}
		st.selection = append(st.selection, item)
		st.feedback = ""
		if len(st.selection) == len(st.items) {
			e.evaluateSequence()
		}
	case ModeSingle:
		st.selection = []Item{item}
		st.attempts++
		st.transition(PhaseEvaluating)
		if item.Correct {
			e.score++
			e.resolve(OutcomeSuccess, e.policy.Feedback.Success)
		} else {
			e.resolve(OutcomeFailure, e.policy.Feedback.Failure)
		}
	case ModeSort:
		if st.isMatched(id) {
			return nil
		}
		st.selection = []Item{item}
		st.rejected = ""
		st.feedback = ""
	case ModePairing:
		if st.isMatched(id) {
			return nil
		}
		if containsItem(st.selection, id) {
			st.selection = nil
			return nil
		}
		st.selection = []Item{item}
		if containsItem(st.partner, id) {
			e.match(item)
		}
	case ModeSet:
		if containsItem(st.selection, id) {
			st.selection = removeItem(st.selection, id)
		} else {
			st.selection = append(st.selection, item)
		}
	}
	return nil
}

// SelectPartner applies a selection on the second pairing channel.
func (e *Engine) SelectPartner(id ItemID) error {
	if e.policy.Mode != ModePairing {
		return fmt.Errorf("select partner: %w", ErrModeMismatch)
	}
	st := e.state
	item, ok := st.byID[id]
	if !ok {
		return fmt.Errorf("select partner %q: %w", id, ErrUnknownItem)
	}
	if !st.accepting() || st.isMatched(id) {
		return nil
	}
	if containsItem(st.partner, id) {
		st.partner = nil
		return nil
	}
	st.partner = []Item{item}
	if containsItem(st.selection, id) {
		e.match(item)
	}
	return nil
}

// SelectTarget places the pending sort-mode item into a category.
func (e *Engine) SelectTarget(categoryID string) error {
	if e.policy.Mode != ModeSort {
		return fmt.Errorf("select target: %w", ErrModeMismatch)
	}
	st := e.state
	if !st.hasCategory(categoryID) {
		return fmt.Errorf("select target %q: %w", categoryID, ErrUnknownCategory)
	}
	if !st.accepting() {
		return nil
	}
	if len(st.selection) == 0 {
		return fmt.Errorf("select target %q: %w", categoryID, ErrNoPendingItem)
	}
	item := st.selection[0]
	st.selection = nil
	st.attempts++
	if item.Category != categoryID {
		st.rejected = item.ID
		st.feedback = e.policy.Feedback.Misplaced
		e.seq++
		e.releaseSeq = e.seq
		e.sched.Schedule(Timer{Kind: TimerRelease, Generation: e.generation, Seq: e.seq, Delay: e.policy.RetryDelay})
		return nil
	}
	st.rejected = ""
	st.matched = append(st.matched, item.ID)
	e.score++
	st.feedback = e.policy.Feedback.Placed
	if len(st.matched) == len(st.items) {
		st.transition(PhaseEvaluating)
		e.resolve(OutcomeSuccess, e.policy.Feedback.Success)
	}
	return nil
}

// Submit evaluates a set-mode selection against the target set.
func (e *Engine) Submit() error {
	if e.policy.Mode != ModeSet {
		return fmt.Errorf("submit: %w", ErrModeMismatch)
	}
	st := e.state
	if !st.accepting() {
		return nil
	}
	if len(st.selection) == 0 {
		return fmt.Errorf("submit: %w", ErrEmptySelection)
	}
	st.attempts++
	st.transition(PhaseEvaluating)
	if st.selectionMatchesTarget() {
		e.score++
		e.resolve(OutcomeSuccess, e.policy.Feedback.Success)
	} else {
		e.resolve(OutcomeFailure, e.policy.Feedback.Failure)
	}
	return nil
}

// Hint returns the next expected sequence step.
func (e *Engine) Hint() (Item, bool) {
	st := e.state
	if e.policy.Mode != ModeSequence || !st.accepting() {
		return Item{}, false
	}
	next := len(st.selection) + 1
	for _, it := range st.items {
		if it.Order == next {
			return it, true
		}
	}
	return Item{}, false
}

// SkipStudy ends the study phase early.
func (e *Engine) SkipStudy() bool {
	if !e.state.studying {
		return false
	}
	e.state.studying = false
	return true
}

// Fire applies a deferred transition. Timers issued for an older generation
// are ignored.
func (e *Engine) Fire(t Timer) bool {
	if t.Generation != e.generation {
		return false
	}
	st := e.state
	switch t.Kind {
	case TimerAdvance:
		if st.phase != PhaseResolved {
			return false
		}
		e.advance()
		return true
	case TimerRetry:
		if st.phase != PhaseEvaluating || !st.transition(PhaseActive) {
			return false
		}
		st.selection = nil
		st.outcome = OutcomeNone
		st.feedback = ""
		return true
	case TimerRelease:
		if t.Seq != e.releaseSeq || st.rejected == "" {
			return false
		}
		st.rejected = ""
		return true
	case TimerReveal:
		return e.SkipStudy()
	default:
		return false
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	st := e.state
	snap := Snapshot{
		Phase:            st.phase,
		Outcome:          st.outcome,
		Mode:             e.policy.Mode,
		Title:            st.round.Title,
		Prompt:           st.round.Prompt,
		Items:            cloneItems(st.items),
		Partners:         cloneItems(st.partners),
		Categories:       append([]Category(nil), st.round.Categories...),
		Selection:        cloneItems(st.selection),
		PartnerSelection: cloneItems(st.partner),
		Matched:          append([]ItemID(nil), st.matched...),
		Eligible:         e.eligible(),
		Rejected:         st.rejected,
		Score:            e.score,
		Round:            e.round,
		Position:         e.position + 1,
		Cycle:            e.cycle,
		Studying:         st.studying,
		Feedback:         st.feedback,
		Generation:       e.generation,
	}
	if n := e.deck.Len(); n > 0 {
		snap.Total = n
	}
	if st.studying {
		snap.Study = cloneItems(st.round.Study)
	}
	return snap
}

func (e *Engine) eligible() []Item {
	st := e.state
	if !st.accepting() {
		return nil
	}
	out := make([]Item, 0, len(st.items))
	for _, it := range st.items {
		switch e.policy.Mode {
		case ModeSequence:
			if containsItem(st.selection, it.ID) {
				continue
			}
		case ModeSort, ModePairing:
			if st.isMatched(it.ID) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (e *Engine) begin() {
	e.sched.Cancel()
	e.generation++

	r := e.deck.Round(e.position, e.rnd)
	items := cloneItems(r.Items)
	if e.policy.Shuffle {
		shuffleItems(e.rnd, items)
	}
	var partners []Item
	if e.policy.Mode == ModePairing {
		partners = cloneItems(r.Items)
		if e.policy.Shuffle {
			shuffleItems(e.rnd, partners)
		}
	}
	byID := make(map[ItemID]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	st := &roundState{
		round:     r,
		items:     items,
		partners:  partners,
		byID:      byID,
		phase:     PhaseActive,
		startedAt: e.now(),
	}
	if len(r.Study) > 0 {
		st.studying = true
		// Without a delay the study phase lasts until SkipStudy.
		if e.policy.StudyDelay > 0 {
			e.sched.Schedule(Timer{Kind: TimerReveal, Generation: e.generation, Delay: e.policy.StudyDelay})
		}
	}
	e.state = st
}

func (e *Engine) advance() {
	e.position++
	e.round++
	wrapped := false
	if n := e.deck.Len(); n != Endless && e.position >= n {
		e.position = 0
		e.cycle++
		wrapped = true
	}
	switch e.policy.Score {
	case ScoreResetEachRound:
		e.score = 0
	case ScoreResetOnWrap:
		if wrapped {
			e.score = 0
		}
	}
	e.begin()
}

func (e *Engine) evaluateSequence() {
	st := e.state
	st.attempts++
	st.transition(PhaseEvaluating)
	for i, it := range st.selection {
		if it.Order != i+1 {
			st.outcome = OutcomeFailure
			st.feedback = e.policy.Feedback.Retry
			e.sched.Schedule(Timer{Kind: TimerRetry, Generation: e.generation, Delay: e.policy.RetryDelay})
			return
		}
	}
	e.score++
	e.resolve(OutcomeSuccess, e.policy.Feedback.Success)
}

func (e *Engine) match(item Item) {
	st := e.state
	st.matched = append(st.matched, item.ID)
	st.selection = nil
	st.partner = nil
	st.attempts++
	e.score++
	st.feedback = e.policy.Feedback.Matched
	if len(st.matched) == len(st.items) {
		st.transition(PhaseEvaluating)
		e.resolve(OutcomeSuccess, e.policy.Feedback.Success)
	}
}

func (e *Engine) resolve(outcome Outcome, message string) {
	st := e.state
	st.transition(PhaseResolved)
	st.outcome = outcome
	st.feedback = message
	e.sched.Schedule(Timer{Kind: TimerAdvance, Generation: e.generation, Delay: e.policy.AdvanceDelay})
	if e.observer != nil {
		e.observer(Result{
			Mode:       e.policy.Mode,
			Title:      st.round.Title,
			Round:      e.round,
			Cycle:      e.cycle,
			Outcome:    outcome,
			Score:      e.score,
			Attempts:   st.attempts,
			StartedAt:  st.startedAt,
			ResolvedAt: e.now(),
		})
	}
}

func (st *roundState) accepting() bool {
	return st.phase == PhaseActive && !st.studying
}

func (st *roundState) transition(to Phase) bool {
	if !st.phase.CanTransitionTo(to) {
		return false
	}
	st.phase = to
	return true
}

func (st *roundState) isMatched(id ItemID) bool {
	for _, m := range st.matched {
		if m == id {
			return true
		}
	}
	return false
}

func (st *roundState) hasCategory(id string) bool {
	for _, c := range st.round.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (st *roundState) selectionMatchesTarget() bool {
	target := 0
	for _, it := range st.items {
		if it.Correct {
			target++
		}
	}
	if len(st.selection) != target {
		return false
	}
	for _, it := range st.selection {
		if !it.Correct {
			return false
		}
	}
	return true
}

func shuffleItems(rnd Source, items []Item) {
	rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	return append([]Item(nil), items...)
}

func removeItem(items []Item, id ItemID) []Item {
	out := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
