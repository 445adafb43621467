package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/model"
)

const (
	insertTimeout = 2 * time.Second
	pendingRounds = 64
)

// Recorder appends engine resolutions to the journal under one session id.
// Inserts run on a background writer so a slow or locked journal never
// stalls play. A nil Recorder records nothing.
type Recorder struct {
	store     *Store
	sessionID string
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
	rows   chan model.RoundRecord
	done   chan struct{}
}

// NewRecorder tags a new play session with a random id and starts its
// writer. Close flushes pending rows.
func NewRecorder(st *Store, log zerolog.Logger) *Recorder {
	r := &Recorder{
		store:     st,
		sessionID: uuid.NewString(),
		log:       log,
		rows:      make(chan model.RoundRecord, pendingRounds),
		done:      make(chan struct{}),
	}
	go r.write()
	return r
}

// SessionID returns the journal id of this play session.
func (r *Recorder) SessionID() string {
	if r == nil {
		return ""
	}
	return r.sessionID
}

// Observer returns an engine observer for game. level is read at resolution
// time so difficulty changes are reflected.
func (r *Recorder) Observer(game string, level func() string) func(engine.Result) {
	return func(res engine.Result) {
		if r == nil || r.store == nil {
			return
		}
		r.enqueue(RecordFromResult(r.sessionID, game, level(), res))
	}
}

// Close stops accepting rounds and waits for queued rows to be written.
// It is safe to call more than once.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.rows)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) enqueue(rec model.RoundRecord) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.log.Warn().Str("game", rec.Game).Int("round", rec.Round).Msg("journal closed, round not recorded")
		return
	}
	select {
	case r.rows <- rec:
	default:
		r.log.Warn().Str("game", rec.Game).Int("round", rec.Round).Msg("journal backlog full, round dropped")
	}
}

func (r *Recorder) write() {
	defer close(r.done)
	for rec := range r.rows {
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		_, err := r.store.InsertRound(ctx, rec)
		cancel()
		if err != nil {
			r.log.Warn().Err(err).Str("game", rec.Game).Int("round", rec.Round).Msg("journal insert failed")
			continue
		}
		r.log.Debug().Str("game", rec.Game).Bool("success", rec.Success).Int("score", rec.Score).Msg("round recorded")
	}
}

// RecordFromResult converts an engine result into a journal row.
func RecordFromResult(sessionID, game, level string, res engine.Result) model.RoundRecord {
	return model.RoundRecord{
		SessionID:  sessionID,
		Game:       game,
		Level:      level,
		Mode:       res.Mode.String(),
		Title:      res.Title,
		Round:      res.Round,
		Cycle:      res.Cycle,
		Success:    res.Outcome == engine.OutcomeSuccess,
		Score:      res.Score,
		Attempts:   res.Attempts,
		StartedAt:  res.StartedAt,
		ResolvedAt: res.ResolvedAt,
		DurationMs: res.ResolvedAt.Sub(res.StartedAt).Milliseconds(),
	}
}
