// Package app provides the core service tying the score domain to the
// entry store, used by the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/okian/streaks/internal/adapters/export"
	"github.com/okian/streaks/internal/adapters/repository"
	"github.com/okian/streaks/internal/domain/calendar"
	"github.com/okian/streaks/internal/domain/games"
	"github.com/okian/streaks/internal/domain/score"
	"github.com/okian/streaks/internal/domain/stats"
	"github.com/okian/streaks/pkg/logger"
	"github.com/okian/streaks/pkg/metrics"
)

// ErrShareTextRejected is returned when pasted text fails a game's
// share-text validator.
var ErrShareTextRejected = errors.New("share text rejected")

// Service implements the application operations over a single entry store.
type Service struct {
	mu sync.Mutex

	store         repository.Store
	storePath     string
	calendarWeeks int
	now           func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects an already-open store. Takes precedence over the path.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStorePath sets the SQLite database location.
func WithStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storePath = path
		}
	}
}

// WithCalendarWeeks sets the heatmap window.
func WithCalendarWeeks(weeks int) Option {
	return func(s *Service) {
		if weeks > 0 {
			s.calendarWeeks = weeks
		}
	}
}

// WithClock overrides the time source. Tests pin this for deterministic
// calendars.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storePath:     "streaks.db",
		calendarWeeks: calendar.DefaultWeeks,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store if one was not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		store, err := repository.NewSQLiteStore(repository.WithPath(s.storePath))
		if err != nil {
			return err
		}
		s.store = store
		s.logger.Info(ctx, "opened entry store", logger.String("path", s.storePath))
	}
	s.started = true
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error(context.Background(), "closing store", logger.Error(err))
	}
	s.started = false
}

// RecordScore validates pasted share text for a game and stores it as a
// raw entry for the given date. The round is materialized later by
// ProcessIncomplete.
func (s *Service) RecordScore(ctx context.Context, game, date, rawText string) (repository.Entry, error) {
	if !games.ValidShareText(game, rawText) {
		metrics.RecordEntryRejected()
		return repository.Entry{}, fmt.Errorf("%w: text does not look like a %s share", ErrShareTextRejected, game)
	}

	entry, err := s.store.Add(ctx, game, date, rawText)
	if err != nil {
		return repository.Entry{}, err
	}
	metrics.RecordEntryRecorded(game)
	s.logger.Debug(ctx, "recorded score",
		logger.String("game", game),
		logger.String("date", date),
	)
	return entry, nil
}

// Normalized returns the canonical glyph score for a game's raw text.
func (s *Service) Normalized(game, rawText string) string {
	return score.Normalize(game, rawText)
}

// ShareText builds the combined share summary for one date: every game's
// normalized score for that day, one per line, in game id order.
func (s *Service) ShareText(ctx context.Context, date string) (string, error) {
	var lines []string
	for _, id := range games.IDs() {
		entry, err := s.store.Get(ctx, id, date)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		if normalized := score.Normalize(id, entry.RawText); normalized != "" {
			lines = append(lines, normalized)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// ProcessIncomplete materializes round numbers for entries that still lack
// one. Each entry is handled in turn; a failure on one is logged and
// skipped so the rest still make progress. Invalid scores are left
// untouched. Returns how many entries were updated and how many skipped.
func (s *Service) ProcessIncomplete(ctx context.Context) (processed, skipped int, err error) {
	entries, err := s.store.Incomplete(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, entry := range entries {
		round := score.Round(score.Normalize(entry.Game, entry.RawText))
		switch {
		case round == score.Invalid:
			metrics.RecordParseOutcome(metrics.OutcomeInvalid)
			skipped++
			continue
		case round >= score.GameOver:
			metrics.RecordParseOutcome(metrics.OutcomeGameOver)
		default:
			metrics.RecordParseOutcome(metrics.OutcomeRound)
		}

		if err := s.store.SetRound(ctx, entry.ID, round); err != nil {
			s.logger.Warn(ctx, "skipping entry after update failure",
				logger.String("id", entry.ID),
				logger.Error(err),
			)
			skipped++
			continue
		}
		processed++
	}

	metrics.RecordBatchRun(processed, skipped)
	s.logger.Info(ctx, "processed incomplete entries",
		logger.Int("processed", processed),
		logger.Int("skipped", skipped),
	)
	return processed, skipped, nil
}

// Histogram returns the per-round distribution for one game.
func (s *Service) Histogram(ctx context.Context, game string) (stats.Histogram, error) {
	entries, err := s.store.ByGame(ctx, game)
	if err != nil {
		return nil, err
	}
	return stats.ByRound(toRecords(entries), game), nil
}

// Activity returns the distinct-games-per-date map across all games.
func (s *Service) Activity(ctx context.Context) (stats.ActivityMap, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return stats.DistinctGamesByDate(toRecords(entries)), nil
}

// Calendar derives the activity heatmap ending at the configured clock's
// current week.
func (s *Service) Calendar(ctx context.Context) (calendar.Calendar, error) {
	activity, err := s.Activity(ctx)
	if err != nil {
		return calendar.Calendar{}, err
	}
	return calendar.Build(activity, s.calendarWeeks, s.now()), nil
}

// Export writes a JSON snapshot of the store to w.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	return export.Write(ctx, w, s.store)
}

// Import replays a snapshot from r into the store. With replace set the
// store is cleared first, so the snapshot becomes the entire history;
// otherwise entries merge in by id.
func (s *Service) Import(ctx context.Context, r io.Reader, replace bool) (int, error) {
	snap, err := export.Read(r)
	if err != nil {
		return 0, err
	}
	if replace {
		return export.Replace(ctx, s.store, snap)
	}
	return export.Import(ctx, s.store, snap)
}

// Store exposes the underlying store to commands that need direct access,
// such as seeding.
func (s *Service) Store() repository.Store {
	return s.store
}

// GameIDs lists the supported games, sorted.
func (s *Service) GameIDs() []string {
	return games.IDs()
}

func toRecords(entries []repository.Entry) []stats.Record {
	records := make([]stats.Record, len(entries))
	for i, e := range entries {
		records[i] = stats.Record{Game: e.Game, Date: e.Date, Round: e.Round}
	}
	return records
}
