package score_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/streaks/internal/domain/score"
)

func TestNormalize(t *testing.T) {
	Convey("Given raw share text", t, func() {
		Convey("When normalizing a typical framed share", func() {
			raw := "Framed #1044\n🎥 🟥 🟥 🟩 ⬛ ⬛ ⬛\n\nhttps://framed.wtf/"

			Convey("Then only the score glyphs survive", func() {
				So(score.Normalize("framed", raw), ShouldEqual, "🎥🟥🟥🟩⬛⬛⬛")
			})
		})

		Convey("When the text is empty", func() {
			So(score.Normalize("framed", ""), ShouldEqual, "")
		})

		Convey("When the text has no glyphs at all", func() {
			So(score.Normalize("framed", "GuessTheGame #500 (3/6) - see you tomorrow"), ShouldEqual, "")
		})

		Convey("When the game is unregistered", func() {
			Convey("Then text passes through with no transform", func() {
				So(score.Normalize("nosuchgame", "abc 🟨🟩"), ShouldEqual, "🟨🟩")
			})
		})

		Convey("When normalizing a gaps share", func() {
			Convey("Then camera glyphs become film frames", func() {
				out := score.Normalize("gaps", "Gaps  #12 🎥🎥")
				So(out, ShouldEqual, "🎞️🎞️")
				So(out, ShouldNotContainSubstring, "🎥")
			})
		})

		Convey("When normalizing a oneframe share", func() {
			Convey("Then camera glyphs become keycap ones", func() {
				So(score.Normalize("oneframe", "One Frame Challenge #9 🎥 🟥 🟩"), ShouldEqual, "1️⃣🟥🟩")
			})
		})

		Convey("When normalizing a faces share", func() {
			Convey("Then the second person glyph starts a new line", func() {
				So(score.Normalize("faces", "👤👤"), ShouldEqual, "👤\n👤")
			})

			Convey("And the first and third occurrences stay in place", func() {
				So(score.Normalize("faces", "👤👤👤"), ShouldEqual, "👤\n👤👤")
			})

			Convey("And a single person glyph is untouched", func() {
				So(score.Normalize("faces", "👤🟩"), ShouldEqual, "👤🟩")
			})
		})

		Convey("When normalizing a bandle share", func() {
			Convey("Then the drum marker is prepended", func() {
				So(score.Normalize("bandle", "Bandle #5 🟥🟨🟩"), ShouldEqual, "🥁🟥🟨🟩")
			})
		})

		Convey("When reapplying normalization to an already-normalized score", func() {
			Convey("Then gaps output is stable", func() {
				once := score.Normalize("gaps", "Gaps  #12 🎥🎥")
				So(score.Normalize("gaps", once), ShouldEqual, once)
			})

			Convey("And faces output is stable", func() {
				once := score.Normalize("faces", "Faces #3 👤 🟥 🟩 👤 🟩")
				So(score.Normalize("faces", once), ShouldEqual, once)
			})

			Convey("But bandle doubles its marker, so it must run only once", func() {
				once := score.Normalize("bandle", "Bandle #5 🟥🟩")
				So(score.Normalize("bandle", once), ShouldEqual, "🥁"+once)
			})
		})

		Convey("When the text has composed characters", func() {
			Convey("Then decomposition still leaves the glyphs parseable", func() {
				out := score.Normalize("framed", "Déjà vu: 🟨🟩 (2/6)")
				So(score.Round(out), ShouldEqual, 2)
			})
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given normalized score strings", t, func() {
		Convey("When the score is empty", func() {
			So(score.Round(""), ShouldEqual, score.Invalid)
		})

		Convey("When the score is whitespace only", func() {
			So(score.Round("   "), ShouldEqual, score.Invalid)
		})

		Convey("When two squares precede the green square", func() {
			So(score.Round("🟨🟨🟩"), ShouldEqual, 3)
		})

		Convey("When the green square comes first", func() {
			So(score.Round("🟩"), ShouldEqual, 1)
		})

		Convey("When squares after the green square exist", func() {
			Convey("Then they are ignored", func() {
				So(score.Round("🟨🟩⬛⬛"), ShouldEqual, 2)
			})
		})

		Convey("When mixed square colors precede the green square", func() {
			So(score.Round("🟥⬛⬜🟨🟩"), ShouldEqual, 5)
		})

		Convey("When non-square glyphs precede the green square", func() {
			Convey("Then they do not count as attempts", func() {
				So(score.Round("🎥🟥🟥🟩"), ShouldEqual, 3)
			})
		})

		Convey("When no green square appears", func() {
			So(score.Round("⬛⬛⬛⬛⬛⬛"), ShouldEqual, score.GameOver)
		})

		Convey("When the score spans multiple lines", func() {
			Convey("Then valid lines sum", func() {
				So(score.Round("🟩\n🟨🟩"), ShouldEqual, 3)
			})

			Convey("And blank lines are discarded", func() {
				So(score.Round("🟩\n\n🟨🟩"), ShouldEqual, 3)
			})

			Convey("And a failed line contributes the game-over value", func() {
				So(score.Round("🟩\n⬛⬛"), ShouldEqual, 1+score.GameOver)
			})

			Convey("And all-blank input is invalid, not zero", func() {
				So(score.Round("\n\n"), ShouldEqual, score.Invalid)
			})
		})

		Convey("When parsing the same input repeatedly", func() {
			Convey("Then the outcome is deterministic", func() {
				first := score.Round("🟨🟥🟩")
				for i := 0; i < 10; i++ {
					So(score.Round("🟨🟥🟩"), ShouldEqual, first)
				}
			})
		})
	})
}
