package engine

import "time"

// TimerKind identifies the deferred transition a Timer performs.
type TimerKind int

const (
	// TimerAdvance replaces a resolved round with the next one.
	TimerAdvance TimerKind = iota
	// TimerRetry clears a failed sequence in place.
	TimerRetry
	// TimerRelease clears the sort-mode rejection marker.
	TimerRelease
	// TimerReveal ends the study phase.
	TimerReveal
)

func (k TimerKind) String() string {
	switch k {
	case TimerAdvance:
		return "advance"
	case TimerRetry:
		return "retry"
	case TimerRelease:
		return "release"
	case TimerReveal:
		return "reveal"
	default:
		return "unknown"
	}
}

// Timer is a deferred transition tagged with the generation it was issued for.
type Timer struct {
	Kind       TimerKind
	Generation uint64
	Seq        uint64
	Delay      time.Duration
}

// Scheduler runs timers after their delay and hands them back to Engine.Fire.
type Scheduler interface {
	Schedule(t Timer)
	// Cancel drops every timer that has not fired yet.
	Cancel()
}

// Queue is a Scheduler that records timers for the caller to dispatch.
type Queue struct {
	pending []Timer
}

// Schedule implements Scheduler.
func (q *Queue) Schedule(t Timer) {
	q.pending = append(q.pending, t)
}

// Cancel implements Scheduler.
func (q *Queue) Cancel() {
	q.pending = nil
}

// Drain returns and clears the recorded timers.
func (q *Queue) Drain() []Timer {
	out := q.pending
	q.pending = nil
	return out
}

// Len reports the number of recorded timers.
func (q *Queue) Len() int {
	return len(q.pending)
}

type nopScheduler struct{}

func (nopScheduler) Schedule(Timer) {}
func (nopScheduler) Cancel()        {}
