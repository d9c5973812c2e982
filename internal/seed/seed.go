// Package seed generates plausible share texts and loads them into the
// store, so the stats views can be exercised without months of real play.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/okian/streaks/internal/adapters/repository"
	"github.com/okian/streaks/internal/domain/games"
	"github.com/okian/streaks/internal/domain/score"
)

// Default generation parameters.
const (
	defaultDays     = 120
	defaultSeed     = 42
	maxAttempts     = 6
	gameOverChance  = 0.15
	skipDayChance   = 0.35
	playGameChance  = 0.55
	puzzleNumberCap = 900
)

// headers produce the validator-matching first line per game.
var headers = map[string]string{
	"framed":        "Framed #%d",
	"oneframe":      "One Frame Challenge #%d",
	"guessthegame":  "GuessTheGame #%d",
	"guesstheaudio": "GuessTheAudio #%d",
	"gaps":          "Gaps  #%d",
	"episode":       "Episode #%d",
	"faces":         "Faces #%d",
	"guessthebook":  "GuessTheBook #%d",
	"bandle":        "Bandle #%d",
}

// Generator produces deterministic pseudo-random entries.
type Generator struct {
	rng  *rand.Rand
	days int
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithDays sets how many trailing days to fill.
func WithDays(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.days = days
		}
	}
}

// WithSeed fixes the random source for reproducible data sets.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible demo data
	}
}

// NewGenerator creates a generator with default configuration.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:  rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // reproducible demo data
		days: defaultDays,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Populate writes generated entries into the store for the configured
// number of days ending at today. Returns how many entries were added.
func (g *Generator) Populate(ctx context.Context, store repository.Store, today time.Time) (int, error) {
	added := 0
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for i := g.days - 1; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		if g.rng.Float64() < skipDayChance {
			continue
		}
		for _, id := range games.IDs() {
			if g.rng.Float64() > playGameChance {
				continue
			}
			text := g.shareText(id)
			if _, err := store.Add(ctx, id, d.Format("2006-01-02"), text); err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}

// shareText fabricates a share text for one game: the game's header line
// followed by a square sequence, with the game's pictograph quirks mixed in.
func (g *Generator) shareText(id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, headers[id], g.rng.Intn(puzzleNumberCap)+1)
	b.WriteByte('\n')

	switch id {
	case "gaps", "oneframe":
		b.WriteString(games.CameraGlyph + " ")
	case "faces":
		// Two rounds, one person glyph ahead of each.
		b.WriteString(games.PersonGlyph + " " + g.squareRun() + "\n")
		b.WriteString(games.PersonGlyph + " " + g.squareRun())
		return b.String()
	}
	b.WriteString(g.squareRun())
	return b.String()
}

// squareRun emits either a run ending in a green square or a full row of
// misses for a game over.
func (g *Generator) squareRun() string {
	misses := []string{score.RedSquare, score.YellowSquare, score.BlackSquare}
	var squares []string
	if g.rng.Float64() < gameOverChance {
		for i := 0; i < maxAttempts; i++ {
			squares = append(squares, misses[g.rng.Intn(len(misses))])
		}
		return strings.Join(squares, " ")
	}

	failed := g.rng.Intn(maxAttempts)
	for i := 0; i < failed; i++ {
		squares = append(squares, misses[g.rng.Intn(len(misses))])
	}
	squares = append(squares, score.GreenSquare)
	return strings.Join(squares, " ")
}
