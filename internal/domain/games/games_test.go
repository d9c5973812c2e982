package games_test

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/streaks/internal/domain/games"
)

func TestRegistry(t *testing.T) {
	Convey("Given the game registry", t, func() {
		Convey("When looking up a registered game", func() {
			def, ok := games.Lookup("framed")

			Convey("Then its definition is returned", func() {
				So(ok, ShouldBeTrue)
				So(def.ID, ShouldEqual, "framed")
				So(def.Validator, ShouldNotBeNil)
				So(def.Formatter, ShouldBeNil)
			})
		})

		Convey("When looking up an unregistered game", func() {
			_, ok := games.Lookup("wordle")
			So(ok, ShouldBeFalse)
		})

		Convey("When listing game ids", func() {
			ids := games.IDs()

			Convey("Then all nine games appear, sorted", func() {
				So(len(ids), ShouldEqual, 9)
				So(sort.StringsAreSorted(ids), ShouldBeTrue)
				So(ids, ShouldContain, "bandle")
				So(ids, ShouldContain, "guessthebook")
			})
		})
	})
}

func TestValidShareText(t *testing.T) {
	Convey("Given share-text validation", t, func() {
		Convey("When the text matches the game's pattern", func() {
			So(games.ValidShareText("framed", "Framed #1044\n🟥🟩"), ShouldBeTrue)
			So(games.ValidShareText("gaps", "Gaps  #31 🎥"), ShouldBeTrue)
			So(games.ValidShareText("oneframe", "One Frame Challenge #12"), ShouldBeTrue)
		})

		Convey("When the text does not match", func() {
			So(games.ValidShareText("framed", "GuessTheGame #500"), ShouldBeFalse)
			So(games.ValidShareText("bandle", "random clipboard junk"), ShouldBeFalse)
		})

		Convey("When the game is unregistered", func() {
			Convey("Then any text is accepted", func() {
				So(games.ValidShareText("wordle", "anything at all"), ShouldBeTrue)
			})
		})
	})
}

func TestFormatters(t *testing.T) {
	Convey("Given per-game formatters", t, func() {
		Convey("When formatting a gaps score", func() {
			def, _ := games.Lookup("gaps")
			out := def.Formatter(games.CameraGlyph + games.CameraGlyph)

			Convey("Then every camera glyph becomes film frames", func() {
				So(out, ShouldEqual, games.FilmFramesGlyph+games.FilmFramesGlyph)
			})
		})

		Convey("When formatting a oneframe score", func() {
			def, _ := games.Lookup("oneframe")
			So(def.Formatter(games.CameraGlyph), ShouldEqual, games.KeycapOneGlyph)
		})

		Convey("When formatting a faces score", func() {
			def, _ := games.Lookup("faces")

			Convey("Then only the second person glyph gains a newline", func() {
				in := games.PersonGlyph + games.PersonGlyph + games.PersonGlyph
				want := games.PersonGlyph + "\n" + games.PersonGlyph + games.PersonGlyph
				So(def.Formatter(in), ShouldEqual, want)
			})
		})

		Convey("When formatting a bandle score", func() {
			def, _ := games.Lookup("bandle")
			So(def.Formatter("🟩"), ShouldEqual, games.DrumGlyph+"🟩")
		})
	})
}

func TestSuggest(t *testing.T) {
	Convey("Given fuzzy game id suggestions", t, func() {
		Convey("When the id is a near miss", func() {
			So(games.Suggest("bandl"), ShouldEqual, "bandle")
		})

		Convey("When the id matches nothing", func() {
			So(games.Suggest("zzz"), ShouldEqual, "")
		})
	})
}
