package logger_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/streaks/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			logger.Get().Info(ctx, "score recorded",
				logger.String("game", "framed"),
				logger.Int("round", 3),
			)

			Convey("Then the message and fields appear in the output", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "score recorded")
				So(out, ShouldContainSubstring, "game=framed")
				So(out, ShouldContainSubstring, "round=3")
			})
		})

		Convey("When using a named logger", func() {
			named := logger.Named("batch")
			So(named, ShouldNotBeNil)
			named.Info(ctx, "run complete")
			So(buf.String(), ShouldContainSubstring, "run complete")
		})

		Convey("When the level filters messages", func() {
			So(logger.SetLevelString("error"), ShouldBeNil)
			logger.Get().Info(ctx, "hidden")
			So(buf.String(), ShouldNotContainSubstring, "hidden")

			logger.Get().Error(ctx, "visible")
			So(buf.String(), ShouldContainSubstring, "visible")
		})

		Convey("When parsing level strings", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
