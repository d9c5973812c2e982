package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/streaks/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS raw_scores (
	id        TEXT PRIMARY KEY,
	game      TEXT NOT NULL,
	date      TEXT NOT NULL,
	raw_text  TEXT NOT NULL,
	int_score INTEGER NOT NULL DEFAULT -1
);

CREATE INDEX IF NOT EXISTS idx_raw_scores_game ON raw_scores(game);
CREATE INDEX IF NOT EXISTS idx_raw_scores_game_date ON raw_scores(game, date);
CREATE INDEX IF NOT EXISTS idx_raw_scores_int_score ON raw_scores(int_score);
`

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the store at the configured
// path and ensures the schema exists.
func NewSQLiteStore(opts ...SQLiteOption) (*SQLiteStore, error) {
	s := &SQLiteStore{
		path: "streaks.db",
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpen, err)
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	s.db = db
	return s, nil
}

// Add inserts a new entry with a fresh id and an unset round.
func (s *SQLiteStore) Add(ctx context.Context, game, date, rawText string) (Entry, error) {
	e := Entry{
		ID:      uuid.NewString(),
		Game:    game,
		Date:    date,
		RawText: rawText,
		Round:   RoundUnset,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO raw_scores (id, game, date, raw_text, int_score) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Game, e.Date, e.RawText, e.Round,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return e, nil
}

// Get returns the first entry for (game, date).
func (s *SQLiteStore) Get(ctx context.Context, game, date string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, game, date, raw_text, int_score FROM raw_scores WHERE game = ? AND date = ? ORDER BY id LIMIT 1",
		game, date,
	)
	var e Entry
	if err := row.Scan(&e.ID, &e.Game, &e.Date, &e.RawText, &e.Round); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return e, nil
}

// All returns every stored entry.
func (s *SQLiteStore) All(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, "SELECT id, game, date, raw_text, int_score FROM raw_scores")
}

// ByGame returns every entry for one game.
func (s *SQLiteStore) ByGame(ctx context.Context, game string) ([]Entry, error) {
	return s.query(ctx, "SELECT id, game, date, raw_text, int_score FROM raw_scores WHERE game = ?", game)
}

// Incomplete returns entries whose round is still unset.
func (s *SQLiteStore) Incomplete(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, "SELECT id, game, date, raw_text, int_score FROM raw_scores WHERE int_score = ?", RoundUnset)
}

// SetRound materializes the round number on an existing entry.
func (s *SQLiteStore) SetRound(ctx context.Context, id string, round int) error {
	res, err := s.db.ExecContext(ctx, "UPDATE raw_scores SET int_score = ? WHERE id = ?", round, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Put upserts a full entry by id, assigning an id when empty.
func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO raw_scores (id, game, date, raw_text, int_score) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Game, e.Date, e.RawText, e.Round,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM raw_scores").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return n, nil
}

// Clear deletes every stored entry.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM raw_scores"); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...interface{}) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveStoreQuery(time.Since(start).Seconds())
	}()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Game, &e.Date, &e.RawText, &e.Round); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return entries, nil
}
