// Package render turns the derived statistics into terminal output. It is
// a presentation collaborator only: all data arrives fully computed.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/streaks/internal/domain/calendar"
	"github.com/okian/streaks/internal/domain/stats"
)

const daysPerWeek = 7

// levelColors indexes cell color by activity level 0..4.
var levelColors = [5]string{"#2d333b", "#0e4429", "#006d32", "#26a641", "#39d353"}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#26a641"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
)

// Heatmap renders the calendar as a weekday-by-week grid with a month
// header, in the style of a contribution graph.
func Heatmap(cal calendar.Calendar) string {
	weeks := len(cal.Days) / daysPerWeek
	if weeks == 0 {
		return ""
	}

	var b strings.Builder

	// Month header: each column is two cells wide.
	header := make([]rune, weeks*2)
	for i := range header {
		header[i] = ' '
	}
	for _, m := range cal.Months {
		col := m.Column * 2
		for i, r := range m.Name {
			if col+i < len(header) {
				header[col+i] = r
			}
		}
	}
	b.WriteString("    " + labelStyle.Render(strings.TrimRight(string(header), " ")) + "\n")

	for row := 0; row < daysPerWeek; row++ {
		label := ""
		if row < len(cal.Weekdays) {
			label = cal.Weekdays[row]
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-3s ", label)))
		for week := 0; week < weeks; week++ {
			day := cal.Days[week*daysPerWeek+row]
			cell := lipgloss.NewStyle().Foreground(lipgloss.Color(levelColors[day.Level]))
			b.WriteString(cell.Render("■ "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Histogram renders a game's round distribution as horizontal bars, rounds
// in ascending order with the game-over bucket last.
func Histogram(game string, h stats.Histogram) string {
	if len(h) == 0 {
		return fmt.Sprintf("%s: no data\n", game)
	}

	rounds := make([]int, 0, len(h))
	for key := range h {
		if key == stats.GameOverBucket {
			continue
		}
		if n, err := strconv.Atoi(key); err == nil {
			rounds = append(rounds, n)
		}
	}
	sort.Ints(rounds)

	maxCount := 0
	for _, count := range h {
		if count > maxCount {
			maxCount = count
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", game)
	for _, round := range rounds {
		writeBar(&b, strconv.Itoa(round), h[strconv.Itoa(round)], maxCount)
	}
	if count, ok := h[stats.GameOverBucket]; ok {
		writeBar(&b, "X", count, maxCount)
	}
	return b.String()
}

const barWidth = 30

func writeBar(b *strings.Builder, label string, count, maxCount int) {
	width := count * barWidth / maxCount
	if width == 0 && count > 0 {
		width = 1
	}
	fmt.Fprintf(b, "%3s %s %s\n",
		label,
		barStyle.Render(strings.Repeat("█", width)),
		countStyle.Render(strconv.Itoa(count)),
	)
}
