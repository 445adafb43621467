package server

import (
	"sync"
	"time"

	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/games"
)

// liveSession serializes every engine call behind mu. Timers fire on their
// own goroutines and take the same lock before calling Engine.Fire.
type liveSession struct {
	mu      sync.Mutex
	session *games.Session
	sched   *afterFuncScheduler
}

// afterFuncScheduler runs engine timers with time.AfterFunc. Schedule and
// Cancel are only called while the owning session's lock is held.
type afterFuncScheduler struct {
	owner  *liveSession
	timers []*time.Timer
}

func (s *afterFuncScheduler) Schedule(t engine.Timer) {
	owner := s.owner
	s.timers = append(s.timers, time.AfterFunc(t.Delay, func() {
		owner.mu.Lock()
		defer owner.mu.Unlock()
		if owner.session != nil {
			owner.session.Engine().Fire(t)
		}
	}))
}

func (s *afterFuncScheduler) Cancel() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func newLiveSession(def games.Definition, level int, opts ...engine.Option) (*liveSession, error) {
	ls := &liveSession{}
	ls.sched = &afterFuncScheduler{owner: ls}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	sess, err := games.NewSession(def, append(opts, engine.WithScheduler(ls.sched))...)
	if err != nil {
		return nil, err
	}
	if level > 0 {
		if err := sess.ChangeDifficulty(level); err != nil {
			ls.sched.Cancel()
			return nil, err
		}
	}
	ls.session = sess
	return ls, nil
}

// do runs fn with the session lock held.
func (ls *liveSession) do(fn func(s *games.Session) error) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return fn(ls.session)
}

func (ls *liveSession) stop() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.sched.Cancel()
	ls.session = nil
}
