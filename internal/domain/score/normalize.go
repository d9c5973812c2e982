// Package score turns pasted share text into canonical glyph scores and
// counts rounds from them. Every function here is pure and total: malformed
// input maps to the Invalid outcome, never to an error.
package score

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/okian/streaks/internal/domain/games"
)

// Punctuation stripped from share text alongside letters, digits and
// whitespace. Everything else, which in practice is the score glyphs and
// their variation selectors, survives.
const strippedPunct = "#:-/.()%_"

// Normalize reduces raw pasted text to the game's canonical score glyphs.
// The input is decomposed (NFD) first so composed characters fall apart
// before stripping, then every letter, digit, whitespace rune and common
// share-text punctuation mark is dropped. If anything survives and the game
// has a registered formatter, the formatter is applied.
//
// Normalize must be called once per raw capture: the bandle formatter
// prepends a marker glyph and would stack it if reapplied.
func Normalize(gameID, rawText string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(rawText) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(strippedPunct, r) {
			continue
		}
		b.WriteRune(r)
	}

	out := b.String()
	if out == "" {
		return out
	}
	if def, ok := games.Lookup(gameID); ok && def.Formatter != nil {
		out = def.Formatter(out)
	}
	return out
}
