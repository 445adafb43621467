// Package server exposes the round engine over HTTP for a rendering surface.
//
// Each game has at most one live session. Clients poll
// GET /api/games/{id} for the snapshot and POST inputs to
// /api/games/{id}/{action}. Timers run server side.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/games"
	"github.com/verte-zerg/reminisce/internal/store"
)

const (
	handlerTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	defaultOrigin   = "http://localhost:5173"
)

// Config wires a Server.
type Config struct {
	Games  []games.Definition
	Origin string
	Log    zerolog.Logger
	// Source returns the random source for a new session. Nil means the
	// engine default.
	Source   func() engine.Source
	Recorder *store.Recorder
}

// Server bundles the router and the live game sessions.
type Server struct {
	r        *chi.Mux
	defs     []games.Definition
	log      zerolog.Logger
	source   func() engine.Source
	recorder *store.Recorder

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		defs:     cfg.Games,
		log:      cfg.Log,
		source:   cfg.Source,
		recorder: cfg.Recorder,
		sessions: map[string]*liveSession{},
	}
	origin := cfg.Origin
	if origin == "" {
		origin = defaultOrigin
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(s.log))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(handlerTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Route("/api/games", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Post("/start", s.handleStart)
			r.Post("/level", s.handleLevel)
			r.Post("/select", s.handleSelect)
			r.Post("/partner", s.handlePartner)
			r.Post("/target", s.handleTarget)
			r.Post("/submit", s.handleSubmit)
			r.Post("/reset", s.handleReset)
			r.Post("/skip", s.handleSkip)
			r.Post("/hint", s.handleHint)
		})
	})
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// Start serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: handlerTimeout}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info().Str("addr", addr).Msg("serving")
	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close stops every session's pending timers.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ls := range s.sessions {
		ls.stop()
		delete(s.sessions, id)
	}
}

// session returns the live session for the game in the URL, creating it at
// the first level when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*liveSession, bool) {
	def, ok := games.Lookup(s.defs, chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_game", fmt.Errorf("unknown game %q", chi.URLParam(r, "id")))
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ls, ok := s.sessions[def.ID]; ok {
		return ls, true
	}
	ls, err := s.open(def, 0)
	if err != nil {
		s.log.Error().Err(err).Str("game", def.ID).Msg("failed to open session")
		writeError(w, http.StatusInternalServerError, "session_failed", nil)
		return nil, false
	}
	s.sessions[def.ID] = ls
	return ls, true
}

// open must be called with s.mu held.
func (s *Server) open(def games.Definition, level int) (*liveSession, error) {
	var ls *liveSession
	levelName := func() string {
		// Observers run inside engine calls, which already hold ls.mu.
		if ls == nil || ls.session == nil {
			return ""
		}
		return ls.session.LevelName()
	}
	record := s.recorder.Observer(def.ID, levelName)
	opts := []engine.Option{engine.WithObserver(func(res engine.Result) {
		s.log.Info().
			Str("game", def.ID).
			Str("level", levelName()).
			Int("round", res.Round).
			Str("outcome", res.Outcome.String()).
			Int("score", res.Score).
			Msg("round resolved")
		record(res)
	})}
	if s.source != nil {
		opts = append(opts, engine.WithSource(s.source()))
	}
	ls, err := newLiveSession(def, level, opts...)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("game", def.ID).Int("level", level+1).Msg("session opened")
	return ls, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out := make([]gameDTO, 0, len(s.defs))
	for _, def := range s.defs {
		out = append(out, toGameDTO(def))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(*games.Session) error { return nil })
}

type levelReq struct {
	Level string `json:"level"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	def, ok := games.Lookup(s.defs, chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_game", fmt.Errorf("unknown game %q", chi.URLParam(r, "id")))
		return
	}
	var req levelReq
	if !decodeOptional(w, r, &req) {
		return
	}
	level, err := def.LevelIndex(req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_level", err)
		return
	}
	s.mu.Lock()
	if old, ok := s.sessions[def.ID]; ok {
		old.stop()
		delete(s.sessions, def.ID)
	}
	ls, err := s.open(def, level)
	if err == nil {
		s.sessions[def.ID] = ls
	}
	s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Str("game", def.ID).Msg("failed to start session")
		writeError(w, http.StatusInternalServerError, "session_failed", nil)
		return
	}
	s.respond(w, ls)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	var req levelReq
	if !decodeRequired(w, r, &req) {
		return
	}
	s.act(w, r, func(sess *games.Session) error {
		level, err := sess.Definition().LevelIndex(req.Level)
		if err != nil {
			return err
		}
		return sess.ChangeDifficulty(level)
	})
}

type itemReq struct {
	Item engine.ItemID `json:"item"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if !decodeRequired(w, r, &req) {
		return
	}
	s.act(w, r, func(sess *games.Session) error { return sess.Engine().Select(req.Item) })
}

func (s *Server) handlePartner(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if !decodeRequired(w, r, &req) {
		return
	}
	s.act(w, r, func(sess *games.Session) error { return sess.Engine().SelectPartner(req.Item) })
}

type targetReq struct {
	Category string `json:"category"`
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	var req targetReq
	if !decodeRequired(w, r, &req) {
		return
	}
	s.act(w, r, func(sess *games.Session) error { return sess.Engine().SelectTarget(req.Category) })
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(sess *games.Session) error { return sess.Engine().Submit() })
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(sess *games.Session) error {
		sess.Engine().Reset()
		return nil
	})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, func(sess *games.Session) error {
		sess.Engine().SkipStudy()
		return nil
	})
}

type hintRes struct {
	Item     *engine.ItemID `json:"item"`
	Snapshot snapshotDTO    `json:"snapshot"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.session(w, r)
	if !ok {
		return
	}
	var res hintRes
	ls.mu.Lock()
	if ls.session == nil {
		ls.mu.Unlock()
		writeError(w, http.StatusConflict, "session_closed", errSessionClosed)
		return
	}
	if it, found := ls.session.Engine().Hint(); found {
		id := it.ID
		res.Item = &id
	}
	res.Snapshot = toSnapshotDTO(ls.session)
	ls.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

// act applies fn to the game's session and replies with the new snapshot.
func (s *Server) act(w http.ResponseWriter, r *http.Request, fn func(*games.Session) error) {
	ls, ok := s.session(w, r)
	if !ok {
		return
	}
	var dto snapshotDTO
	err := ls.do(func(sess *games.Session) error {
		if sess == nil {
			return errSessionClosed
		}
		if err := fn(sess); err != nil {
			return err
		}
		dto = toSnapshotDTO(sess)
		return nil
	})
	if err != nil {
		status, code := errorStatus(err)
		s.log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected input")
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) respond(w http.ResponseWriter, ls *liveSession) {
	var dto snapshotDTO
	if err := ls.do(func(sess *games.Session) error {
		if sess == nil {
			return errSessionClosed
		}
		dto = toSnapshotDTO(sess)
		return nil
	}); err != nil {
		writeError(w, http.StatusConflict, "session_closed", errSessionClosed)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

var errSessionClosed = errors.New("session closed")

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrUnknownItem):
		return http.StatusBadRequest, "unknown_item"
	case errors.Is(err, engine.ErrUnknownCategory):
		return http.StatusBadRequest, "unknown_category"
	case errors.Is(err, games.ErrUnknownLevel):
		return http.StatusBadRequest, "unknown_level"
	case errors.Is(err, engine.ErrNoPendingItem):
		return http.StatusConflict, "no_pending_item"
	case errors.Is(err, engine.ErrEmptySelection):
		return http.StatusConflict, "empty_selection"
	case errors.Is(err, engine.ErrModeMismatch):
		return http.StatusConflict, "mode_mismatch"
	case errors.Is(err, errSessionClosed):
		return http.StatusConflict, "session_closed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
