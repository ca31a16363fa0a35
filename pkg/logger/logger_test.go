package logger_test

import (
	"context"
	"testing"

	"github.com/d6vs-git/us-squash-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching and using the global logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello", logger.String("k", "v"), logger.Int("n", 1))
			}, ShouldNotPanic)
		})

		Convey("When deriving a named logger", func() {
			l := logger.Named("planner")
			So(l, ShouldNotBeNil)
			So(func() { l.Debug(context.Background(), "scoped") }, ShouldNotPanic)
		})

		Convey("When setting levels by string", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
