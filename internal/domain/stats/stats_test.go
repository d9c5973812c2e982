package stats_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/streaks/internal/domain/score"
	"github.com/okian/streaks/internal/domain/stats"
)

func TestByRound(t *testing.T) {
	Convey("Given stored records for a game", t, func() {
		Convey("When a date has duplicate submissions", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: 4},
				{Game: "framed", Date: "2024-05-01", Round: 2},
			}
			hist := stats.ByRound(records, "framed")

			Convey("Then the date counts once, under the lowest round", func() {
				So(hist, ShouldResemble, stats.Histogram{"2": 1})
			})
		})

		Convey("When outcomes reach the game-over range", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: score.GameOver},
				{Game: "framed", Date: "2024-05-02", Round: score.GameOver + 1},
				{Game: "framed", Date: "2024-05-03", Round: 3},
			}
			hist := stats.ByRound(records, "framed")

			Convey("Then everything at or above the threshold folds into one bucket", func() {
				So(hist[stats.GameOverBucket], ShouldEqual, 2)
				So(hist["3"], ShouldEqual, 1)
				So(hist, ShouldNotContainKey, "1000")
				So(hist, ShouldNotContainKey, "1001")
			})
		})

		Convey("When records are unparsed or invalid", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: score.Invalid},
				{Game: "framed", Date: "2024-05-02", Round: 1},
			}
			hist := stats.ByRound(records, "framed")

			Convey("Then they are excluded before grouping", func() {
				So(hist, ShouldResemble, stats.Histogram{"1": 1})
			})
		})

		Convey("When records belong to other games", func() {
			records := []stats.Record{
				{Game: "bandle", Date: "2024-05-01", Round: 2},
				{Game: "framed", Date: "2024-05-01", Round: 3},
			}

			Convey("Then only the requested game is tallied", func() {
				So(stats.ByRound(records, "framed"), ShouldResemble, stats.Histogram{"3": 1})
			})
		})

		Convey("When tallying many dates", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: 3},
				{Game: "framed", Date: "2024-05-01", Round: 5},
				{Game: "framed", Date: "2024-05-02", Round: score.GameOver},
				{Game: "framed", Date: "2024-05-03", Round: 3},
			}
			hist := stats.ByRound(records, "framed")

			Convey("Then bucket counts sum to the number of distinct dates", func() {
				total := 0
				for _, count := range hist {
					total += count
				}
				So(total, ShouldEqual, 3)
			})
		})

		Convey("When there are no records", func() {
			So(stats.ByRound(nil, "framed"), ShouldBeEmpty)
		})
	})
}

func TestDistinctGamesByDate(t *testing.T) {
	Convey("Given records across games", t, func() {
		Convey("When two games were played on the same date", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: 2},
				{Game: "bandle", Date: "2024-05-01", Round: 4},
			}

			Convey("Then the date counts two games", func() {
				So(stats.DistinctGamesByDate(records)["2024-05-01"], ShouldEqual, 2)
			})
		})

		Convey("When the same game appears twice on one date", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: 2},
				{Game: "framed", Date: "2024-05-01", Round: 3},
			}

			Convey("Then it counts once", func() {
				So(stats.DistinctGamesByDate(records)["2024-05-01"], ShouldEqual, 1)
			})
		})

		Convey("When records are not yet parsed", func() {
			records := []stats.Record{
				{Game: "framed", Date: "2024-05-01", Round: -1},
			}

			Convey("Then they still count as activity", func() {
				So(stats.DistinctGamesByDate(records)["2024-05-01"], ShouldEqual, 1)
			})
		})
	})
}
