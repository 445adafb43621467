// Package store handles SQLite persistence of the round journal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/reminisce/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var baseMigrations = []string{
	`CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY,
		session_id TEXT NOT NULL,
		game TEXT NOT NULL,
		level TEXT NOT NULL,
		mode TEXT NOT NULL,
		title TEXT NOT NULL,
		round INTEGER NOT NULL,
		cycle INTEGER NOT NULL,
		success INTEGER NOT NULL,
		score INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		resolved_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	)`,
}

var indexMigrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_rounds_resolved_at ON rounds(resolved_at)`,
	`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game, resolved_at)`,
}

// Store is the round journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path and migrates it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	// WAL lets history read while a game is recording.
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}
	for _, stmt := range baseMigrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("base migration failed: %w", err)
		}
	}
	for _, stmt := range indexMigrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("index migration failed: %w", err)
		}
	}
	return nil
}

// InsertRound appends one resolved round and returns its row id.
func (s *Store) InsertRound(ctx context.Context, rec model.RoundRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (session_id, game, level, mode, title, round, cycle, success, score, attempts, started_at, resolved_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Game, rec.Level, rec.Mode, rec.Title,
		rec.Round, rec.Cycle, boolInt(rec.Success), rec.Score, rec.Attempts,
		formatTime(rec.StartedAt), formatTime(rec.ResolvedAt), rec.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("insert round: %w", err)
	}
	return res.LastInsertId()
}

// ListRounds returns journal rows matching cfg, oldest first. Last keeps
// only the most recent rows.
func (s *Store) ListRounds(ctx context.Context, cfg model.HistoryConfig) ([]model.RoundRecord, error) {
	where, args := historyFilter(cfg)
	rounds, err := collect(ctx, s.db, `SELECT session_id, game, level, mode, title, round, cycle, success, score, attempts, started_at, resolved_at, duration_ms
		FROM rounds WHERE `+where+`
		ORDER BY resolved_at ASC, id ASC`, args, func(rows *sql.Rows) (model.RoundRecord, error) {
		var rec model.RoundRecord
		var success int
		var startedAt, resolvedAt string
		if err := rows.Scan(&rec.SessionID, &rec.Game, &rec.Level, &rec.Mode, &rec.Title, &rec.Round, &rec.Cycle,
			&success, &rec.Score, &rec.Attempts, &startedAt, &resolvedAt, &rec.DurationMs); err != nil {
			return rec, err
		}
		rec.Success = success == 1
		var err error
		if rec.StartedAt, err = parseTime(startedAt); err != nil {
			return rec, err
		}
		rec.ResolvedAt, err = parseTime(resolvedAt)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return lastN(rounds, cfg.Last), nil
}

// ListGameAggregates summarizes the journal per game, ordered by game id.
func (s *Store) ListGameAggregates(ctx context.Context, cfg model.HistoryConfig) ([]model.GameAggregate, error) {
	where, args := historyFilter(cfg)
	aggs, err := collect(ctx, s.db, `SELECT game, COUNT(DISTINCT session_id), COUNT(*), SUM(success), MAX(score),
		SUM(duration_ms), MAX(resolved_at)
		FROM rounds WHERE `+where+`
		GROUP BY game
		ORDER BY game ASC`, args, func(rows *sql.Rows) (model.GameAggregate, error) {
		var agg model.GameAggregate
		var last string
		if err := rows.Scan(&agg.Game, &agg.Sessions, &agg.Rounds, &agg.Successes, &agg.BestScore, &agg.DurationMs, &last); err != nil {
			return agg, err
		}
		var err error
		agg.LastPlayed, err = parseTime(last)
		return agg, err
	})
	if err != nil {
		return nil, fmt.Errorf("list game aggregates: %w", err)
	}
	return aggs, nil
}

// ListSessions summarizes the journal per play session, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionAggregate, error) {
	where, args := historyFilter(cfg)
	sessions, err := collect(ctx, s.db, `SELECT session_id, game, level, COUNT(*), SUM(success), MIN(started_at), MAX(resolved_at)
		FROM rounds WHERE `+where+`
		GROUP BY session_id, game, level
		ORDER BY MAX(resolved_at) ASC`, args, func(rows *sql.Rows) (model.SessionAggregate, error) {
		var agg model.SessionAggregate
		var startedAt, endedAt string
		if err := rows.Scan(&agg.SessionID, &agg.Game, &agg.Level, &agg.Rounds, &agg.Successes, &startedAt, &endedAt); err != nil {
			return agg, err
		}
		var err error
		if agg.StartedAt, err = parseTime(startedAt); err != nil {
			return agg, err
		}
		agg.EndedAt, err = parseTime(endedAt)
		return agg, err
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return lastN(sessions, cfg.Last), nil
}

func collect[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func historyFilter(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	var args []any
	if cfg.Game != "" {
		clauses = append(clauses, "game = ?")
		args = append(args, cfg.Game)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "resolved_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	return strings.Join(clauses, " AND "), args
}

func lastN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

// Timestamps are stored as UTC RFC 3339 text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
