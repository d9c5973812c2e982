// Package repository defines the raw score entry store and its SQLite
// implementation.
package repository

import "context"

// RoundUnset marks an entry whose raw text has not been parsed yet. It is
// the same value the round parser uses for invalid scores, so entries that
// never parse stay in the incomplete set; export files from older data
// remain readable because of this.
const RoundUnset = -1

// Entry is one committed score: the raw pasted text for a game on a day,
// plus the lazily materialized round number.
type Entry struct {
	ID      string `json:"id"`
	Game    string `json:"game"`
	Date    string `json:"date"` // YYYY-MM-DD
	RawText string `json:"rawText"`
	Round   int    `json:"round"`
}

// Store provides access to the persisted entries. Implementations own the
// records; callers receive and pass values only.
type Store interface {
	// Add inserts a new entry with a fresh id and an unset round.
	Add(ctx context.Context, game, date, rawText string) (Entry, error)

	// Get returns the first entry for (game, date).
	// Returns ErrNotFound when none exists.
	Get(ctx context.Context, game, date string) (Entry, error)

	// All returns every stored entry.
	All(ctx context.Context) ([]Entry, error)

	// ByGame returns every entry for one game.
	ByGame(ctx context.Context, game string) ([]Entry, error)

	// Incomplete returns entries whose round is still unset.
	Incomplete(ctx context.Context) ([]Entry, error)

	// SetRound materializes the round number on an existing entry.
	SetRound(ctx context.Context, id string, round int) error

	// Put upserts a full entry by id, assigning an id when empty.
	// Import uses this to replay exported records unchanged.
	Put(ctx context.Context, e Entry) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear deletes every stored entry. Replace imports call this
	// before replaying a snapshot.
	Clear(ctx context.Context) error

	Close() error
}
