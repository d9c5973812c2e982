// Package games holds the static table of supported guessing games:
// per-game score formatters and share-text validators keyed by game id.
package games

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Pictograph glyphs emitted by game sites inside share text.
const (
	CameraGlyph     = "\U0001F3A5"          // movie camera, emitted by gaps and oneframe
	FilmFramesGlyph = "\U0001F39E️" // film frames with variation selector
	PersonGlyph     = "\U0001F464"          // person silhouette, one per faces round
	DrumGlyph       = "\U0001F941"          // drum, bandle marker
	KeycapOneGlyph  = "1️⃣"    // keycap digit one
)

// Formatter rewrites a normalized score string for one specific game.
type Formatter func(score string) string

// Definition describes one supported game. Formatter and Validator are both
// optional: a game without a formatter passes scores through unchanged, and
// a game without a validator accepts any pasted text.
type Definition struct {
	ID        string
	Formatter Formatter
	Validator *regexp.Regexp
}

// registry is the closed set of known games. Built once at init, read-only
// afterwards.
var registry = map[string]Definition{
	"framed":        {ID: "framed", Validator: regexp.MustCompile(`Framed #`)},
	"oneframe":      {ID: "oneframe", Formatter: oneFrameFormatter, Validator: regexp.MustCompile(`One Frame Challenge #`)},
	"guessthegame":  {ID: "guessthegame", Validator: regexp.MustCompile(`GuessTheGame #`)},
	"guesstheaudio": {ID: "guesstheaudio", Validator: regexp.MustCompile(`GuessTheAudio #`)},
	"gaps":          {ID: "gaps", Formatter: gapsFormatter, Validator: regexp.MustCompile(`Gaps\s+#`)},
	"episode":       {ID: "episode", Validator: regexp.MustCompile(`Episode #`)},
	"faces":         {ID: "faces", Formatter: facesFormatter, Validator: regexp.MustCompile(`Faces #`)},
	"guessthebook":  {ID: "guessthebook", Validator: regexp.MustCompile(`GuessTheBook #`)},
	"bandle":        {ID: "bandle", Formatter: bandleFormatter, Validator: regexp.MustCompile(`Bandle #`)},
}

// gapsFormatter rewrites the camera glyph gaps emits into the film-frames
// glyph so all gaps scores use a single pictograph.
func gapsFormatter(score string) string {
	return strings.ReplaceAll(score, CameraGlyph, FilmFramesGlyph)
}

// oneFrameFormatter rewrites the camera glyph into a keycap one so round
// counting treats it like any other non-square glyph.
func oneFrameFormatter(score string) string {
	return strings.ReplaceAll(score, CameraGlyph, KeycapOneGlyph)
}

// facesFormatter breaks a two-round faces score onto two lines by inserting
// a newline before the second person glyph. Only the second occurrence is
// touched; the first and any later ones stay where they are.
func facesFormatter(score string) string {
	var b strings.Builder
	b.Grow(len(score) + 1)
	persons := 0
	for _, r := range score {
		if string(r) == PersonGlyph {
			persons++
			if persons == 2 {
				b.WriteByte('\n')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// bandleFormatter prepends the drum marker. Not idempotent: it must run
// exactly once, on the raw capture.
func bandleFormatter(score string) string {
	return DrumGlyph + score
}

// Lookup returns the definition for id. The second return is false for
// unregistered games, which callers treat as "no transform, no validation".
func Lookup(id string) (Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// IDs returns all registered game ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ValidShareText reports whether text looks like the given game's share
// text. Games without a validator accept anything, as do unregistered ids.
func ValidShareText(id, text string) bool {
	def, ok := registry[id]
	if !ok || def.Validator == nil {
		return true
	}
	return def.Validator.MatchString(text)
}

// Suggest returns the closest registered game id for a likely typo, or ""
// when nothing matches.
func Suggest(id string) string {
	matches := fuzzy.Find(id, IDs())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
