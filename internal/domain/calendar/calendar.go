// Package calendar builds the activity heatmap grid: a fixed window of
// weeks ending at the most recent Sunday, with an intensity level per day.
package calendar

import (
	"fmt"
	"time"

	"github.com/okian/streaks/internal/domain/stats"
)

// DefaultWeeks is the window rendered by the stats view.
const DefaultWeeks = 52

// Activity level thresholds: the lowest count that maps to each non-zero
// level.
const (
	lowThreshold      = 1
	mediumThreshold   = 3
	highThreshold     = 5
	veryHighThreshold = 8
)

const daysPerWeek = 7

// Day is one heatmap cell.
type Day struct {
	Date    time.Time
	Key     string // YYYY-MM-DD
	Count   int
	Level   int // 0..4
	Tooltip string
}

// Month is a header label spanning the columns starting at Column.
type Month struct {
	Name   string
	Column int
}

// Calendar is the fully derived heatmap: days oldest first, month
// breakpoints, and the weekday gutter labels aligned to the grid rows.
type Calendar struct {
	Days     []Day
	Months   []Month
	Weekdays []string
}

// Level maps a day's distinct-game count to an intensity level 0..4.
func Level(count int) int {
	switch {
	case count < lowThreshold:
		return 0
	case count < mediumThreshold:
		return 1
	case count < highThreshold:
		return 2
	case count < veryHighThreshold:
		return 3
	default:
		return 4
	}
}

// Build derives the heatmap for the weeks*7 days ending at the most recent
// Sunday at or before today. Days missing from activity count as zero. The
// result is a pure function of its arguments; tests pin today.
func Build(activity stats.ActivityMap, weeks int, today time.Time) Calendar {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	anchor = anchor.AddDate(0, 0, -int(anchor.Weekday()))

	total := weeks * daysPerWeek
	first := anchor.AddDate(0, 0, -(total - 1))

	days := make([]Day, 0, total)
	var months []Month
	lastMonth := time.Month(0)
	for i := 0; i < total; i++ {
		d := first.AddDate(0, 0, i)
		key := d.Format("2006-01-02")
		count := activity[key]
		days = append(days, Day{
			Date:    d,
			Key:     key,
			Count:   count,
			Level:   Level(count),
			Tooltip: tooltip(d, count),
		})

		// A month label goes on the first day of any column that starts a
		// month different from the previous label's.
		if i%daysPerWeek == 0 && d.Month() != lastMonth {
			months = append(months, Month{Name: d.Format("Jan"), Column: i / daysPerWeek})
			lastMonth = d.Month()
		}
	}

	// Grid row r holds days[r], days[r+7], ... so the gutter labels
	// follow the weekday of the window's first seven days. Only
	// Monday/Wednesday/Friday rows get a label.
	weekdays := make([]string, daysPerWeek)
	for r := 0; r < daysPerWeek && r < len(days); r++ {
		switch days[r].Date.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
			weekdays[r] = days[r].Date.Format("Mon")
		}
	}

	return Calendar{
		Days:     days,
		Months:   months,
		Weekdays: weekdays,
	}
}

func tooltip(d time.Time, count int) string {
	when := d.Format("Mon, Jan 2, 2006")
	switch count {
	case 0:
		return fmt.Sprintf("No games on %s", when)
	case 1:
		return fmt.Sprintf("1 game on %s", when)
	default:
		return fmt.Sprintf("%d games on %s", count, when)
	}
}
