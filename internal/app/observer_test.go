package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	service "github.com/okian/mlbspray/internal/app"
	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogObserver(t *testing.T) {
	Convey("Given a log observer reporting every second game", t, func() {
		var buf bytes.Buffer
		So(logger.InitWithOptions(logger.Options{Writer: &buf, Format: logger.FormatJSON}), ShouldBeNil)
		defer func() { _ = logger.Init() }()

		ctx := context.Background()
		obs := service.LogObserver{Logger: logger.Named("progress"), Every: 2}

		Convey("When three games are reported", func() {
			obs.OnFetchStart(ctx, "run-1", 3)
			for i := 1; i <= 3; i++ {
				obs.OnGame(ctx, service.Progress{Index: i, Total: 3, Game: model.ScheduledGame{GamePK: "1"}, Outcome: service.OutcomeCached})
			}
			obs.OnFetchFinish(ctx, service.FetchStats{RunID: "run-1", Cached: 3}, nil)

			Convey("Then progress is logged on the interval and the last game", func() {
				out := buf.String()
				So(strings.Count(out, `"msg":"fetch progress"`), ShouldEqual, 2)
				So(out, ShouldContainSubstring, `"msg":"fetch started"`)
				So(out, ShouldContainSubstring, `"msg":"fetch finished"`)
			})
		})

		Convey("When the run stops with an error", func() {
			obs.OnFetchFinish(ctx, service.FetchStats{RunID: "run-1"}, errors.New("disk full"))

			Convey("Then it is logged as an error", func() {
				So(buf.String(), ShouldContainSubstring, `"level":"ERROR"`)
				So(buf.String(), ShouldContainSubstring, "disk full")
			})
		})
	})
}
