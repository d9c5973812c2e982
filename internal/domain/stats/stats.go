// Package stats derives display statistics from stored score entries:
// per-game round histograms and per-day activity counts. Both are pure
// reductions recomputed from scratch on every call.
package stats

import (
	"strconv"

	"github.com/okian/streaks/internal/domain/score"
)

// GameOverBucket is the histogram key that absorbs every outcome at or
// above score.GameOver.
const GameOverBucket = "gameOver"

// Record is the slice of a stored entry the aggregations need.
type Record struct {
	Game  string
	Date  string // YYYY-MM-DD
	Round int    // score.Invalid when not yet parsed
}

// Histogram maps a round label (a stringified round number, or
// GameOverBucket) to how many days ended with that outcome.
type Histogram map[string]int

// ActivityMap maps a date to the number of distinct games played that day.
type ActivityMap map[string]int

// ByRound tallies the given game's per-day outcomes into a histogram.
// Unparsed and invalid records are dropped first. Days with duplicate
// submissions count once, under the lowest round recorded for the day: the
// player may have pasted several times, and the best attempt wins. Rounds
// at or above score.GameOver collapse into GameOverBucket.
func ByRound(records []Record, game string) Histogram {
	bestByDate := make(map[string]int)
	for _, rec := range records {
		if rec.Game != game || rec.Round < 0 {
			continue
		}
		best, ok := bestByDate[rec.Date]
		if !ok || rec.Round < best {
			bestByDate[rec.Date] = rec.Round
		}
	}

	hist := make(Histogram, len(bestByDate))
	for _, round := range bestByDate {
		if round >= score.GameOver {
			hist[GameOverBucket]++
			continue
		}
		hist[strconv.Itoa(round)]++
	}
	return hist
}

// DistinctGamesByDate counts, for every date with at least one entry, the
// number of distinct games recorded that day. Replays of the same game on
// the same day count once.
func DistinctGamesByDate(records []Record) ActivityMap {
	gamesByDate := make(map[string]map[string]struct{})
	for _, rec := range records {
		set, ok := gamesByDate[rec.Date]
		if !ok {
			set = make(map[string]struct{})
			gamesByDate[rec.Date] = set
		}
		set[rec.Game] = struct{}{}
	}

	activity := make(ActivityMap, len(gamesByDate))
	for date, set := range gamesByDate {
		activity[date] = len(set)
	}
	return activity
}
