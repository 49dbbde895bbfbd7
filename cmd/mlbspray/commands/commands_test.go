package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mlbspray/cmd/mlbspray/commands"
	service "github.com/okian/mlbspray/internal/app"
	"github.com/okian/mlbspray/internal/config"
	"github.com/okian/mlbspray/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const gameJSON = `{"allPlays":[{
	"about":{"halfInning":"top","inning":1,"atBatIndex":0},
	"result":{"eventType":"double","description":"line drive to center"},
	"matchup":{"batter":{"id":10,"fullName":"Lead Off"},"batSide":{"code":"L"},
	           "pitcher":{"id":20,"fullName":"Starter"},"pitchHand":{"code":"R"}},
	"playEvents":[{"details":{"isInPlay":true},"count":{"balls":1,"strikes":0,"outs":0},
	               "hitData":{"launchSpeed":101.2,"coordinates":{"coordX":125,"coordY":99}}}]}],
	"playsByInning":[{"hits":{"home":[{"team":{"id":147}}]}}]}`

func execute(cli *commands.CLI, args ...string) (string, error) {
	var out bytes.Buffer
	cli.SetOutput(&out, &out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	Convey("Given the CLI", t, func() {
		out, err := execute(commands.New(config.New()), "version")

		Convey("Then version prints the build information", func() {
			So(err, ShouldBeNil)
			So(out, ShouldStartWith, "mlbspray version dev")
		})
	})
}

func TestCompileCommand(t *testing.T) {
	Convey("Given a cache with one 2024 game", t, func() {
		cacheDir := t.TempDir()
		outDir := filepath.Join(t.TempDir(), "out")
		seasonDir := filepath.Join(cacheDir, "2024")
		So(os.MkdirAll(seasonDir, 0o755), ShouldBeNil)
		So(os.WriteFile(filepath.Join(seasonDir, "GAMEPK_745123_NYY_VS_BOS.json"), []byte(gameJSON), 0o644), ShouldBeNil)
		cfg := config.New()

		Convey("When compiling the season", func() {
			out, err := execute(commands.New(cfg), "compile", "--season", "2024", "--cache-dir", cacheDir, "--out", outDir)

			Convey("Then the hit table is written", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "1 hit events from 1 of 1 files")

				data, readErr := os.ReadFile(filepath.Join(outDir, "MLB_HIT_DATA_2024.csv"))
				So(readErr, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				So(len(lines), ShouldEqual, 2)
				So(lines[1], ShouldContainSubstring, "CF")
			})
		})

		Convey("When a metrics file is configured", func() {
			cfg.MetricsFile = filepath.Join(t.TempDir(), "mlbspray.prom")
			_, err := execute(commands.New(cfg), "compile", "--season", "2024", "--cache-dir", cacheDir, "--out", outDir)

			Convey("Then the registry is dumped after the run", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(cfg.MetricsFile)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "mlbspray_pipeline_run_duration_seconds")
			})
		})

		Convey("When the season was never cached", func() {
			_, err := execute(commands.New(cfg), "compile", "--season", "2019", "--cache-dir", cacheDir, "--out", outDir)

			Convey("Then the season is reported missing", func() {
				So(errors.Is(err, service.ErrSeasonNotFound), ShouldBeTrue)
			})
		})

		Convey("When the configured sector table overlaps", func() {
			cfg.SectorTable = []config.SectorRange{
				{Label: "L", Min: -45, Max: 5},
				{Label: "R", Min: 0, Max: 45},
			}
			_, err := execute(commands.New(cfg), "compile", "--season", "2024", "--cache-dir", cacheDir, "--out", outDir)

			Convey("Then the configuration is rejected", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When --season is missing", func() {
			_, err := execute(commands.New(cfg), "compile", "--cache-dir", cacheDir)

			Convey("Then the flag is required", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "season")
			})
		})
	})
}

func TestFetchCommand(t *testing.T) {
	Convey("Given a Stats API serving one game", t, func() {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/game/745123/playByPlay" {
				http.NotFound(w, r)
				return
			}
			hits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, gameJSON)
		}))
		defer srv.Close()

		cfg := config.New()
		cfg.APIBaseURL = srv.URL
		cacheDir := t.TempDir()
		schedulePath := filepath.Join(t.TempDir(), "schedule.csv")
		So(os.WriteFile(schedulePath, []byte(
			"game_pk,date,home_team,away_team,home_id,away_id\n"+
				"745123,2024-04-01,NYY,BOS,147,111\n"), 0o644), ShouldBeNil)

		Convey("When fetching the schedule", func() {
			out, err := execute(commands.New(cfg), "fetch", "--schedule", schedulePath, "--cache-dir", cacheDir, "--delay", "0s")

			Convey("Then the game is cached under its season", func() {
				So(err, ShouldBeNil)
				So(hits, ShouldEqual, 1)
				So(out, ShouldContainSubstring, "1 cached")
				matches, globErr := filepath.Glob(filepath.Join(cacheDir, "2024", "*.json"))
				So(globErr, ShouldBeNil)
				So(len(matches), ShouldEqual, 1)
			})
		})

		Convey("When the delay is negative", func() {
			_, err := execute(commands.New(cfg), "fetch", "--schedule", schedulePath, "--cache-dir", cacheDir, "--delay", "-1s")

			Convey("Then the run is refused", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
				So(hits, ShouldEqual, 0)
			})
		})

		Convey("When the schedule file does not exist", func() {
			_, err := execute(commands.New(cfg), "fetch", "--schedule", filepath.Join(cacheDir, "nope.csv"), "--cache-dir", cacheDir)

			Convey("Then the reader error is returned", func() {
				So(err, ShouldNotBeNil)
				So(hits, ShouldEqual, 0)
			})
		})
	})
}
