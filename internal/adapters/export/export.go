// Package export reads and writes JSON snapshots of the entry store so
// score history can move between machines.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/okian/streaks/internal/adapters/repository"
	"github.com/okian/streaks/pkg/metrics"
)

// FormatName identifies snapshot files produced by this package.
const FormatName = "streaks-export"

// FormatVersion is bumped when the snapshot layout changes.
const FormatVersion = 1

// Snapshot is the on-disk export format. Entries round-trip through it
// unchanged.
type Snapshot struct {
	FormatName string             `json:"formatName"`
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exportedAt"`
	Entries    []repository.Entry `json:"entries"`
}

// Write serializes every stored entry to w.
func Write(ctx context.Context, w io.Writer, store repository.Store) error {
	entries, err := store.All(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	snap := Snapshot{
		FormatName: FormatName,
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Entries:    entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	metrics.RecordExport()
	return nil
}

// Read parses and verifies a snapshot. Callers can inspect the metadata
// before committing to an import.
func Read(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	if snap.FormatName != FormatName {
		return Snapshot{}, fmt.Errorf("%w: unexpected format %q", ErrBadSnapshot, snap.FormatName)
	}
	if snap.Version != FormatVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, snap.Version)
	}
	return snap, nil
}

// Import replays a snapshot into the store, upserting by entry id. A
// failure on one entry does not stop the rest; the number of imported
// entries is returned alongside the first error encountered.
func Import(ctx context.Context, store repository.Store, snap Snapshot) (int, error) {
	imported := 0
	var firstErr error
	for _, e := range snap.Entries {
		if err := store.Put(ctx, e); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		imported++
	}
	if imported > 0 {
		metrics.RecordImport()
	}
	return imported, firstErr
}

// Replace clears the store and then replays the snapshot, so afterwards
// the snapshot is the entire history. Entries that existed before the
// import are gone.
func Replace(ctx context.Context, store repository.Store, snap Snapshot) (int, error) {
	if err := store.Clear(ctx); err != nil {
		return 0, err
	}
	return Import(ctx, store, snap)
}

// Filename returns a timestamped default file name for a new export.
func Filename(now time.Time) string {
	return fmt.Sprintf("streaks-stats-%s.json", now.UTC().Format("2006-01-02T15-04-05"))
}
