package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	service "github.com/okian/mlbspray/internal/app"
	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// gameRaw builds a play-by-play payload with one in-play event at (x, y),
// padded with non-play-event plays so the indented artifact clears 2048 bytes.
func gameRaw(x, y float64) []byte {
	plays := []string{fmt.Sprintf(`{
		"about":{"halfInning":"bottom","inning":4,"atBatIndex":30},
		"result":{"eventType":"single","description":"grounder through the right side"},
		"matchup":{"batter":{"id":1,"fullName":"A Batter"},"batSide":{"code":"R"},
		           "pitcher":{"id":2,"fullName":"A Pitcher"},"pitchHand":{"code":"L"}},
		"playEvents":[{"details":{"isInPlay":true},"count":{"balls":2,"strikes":1,"outs":1},
		               "hitData":{"launchSpeed":88.1,"coordinates":{"coordX":%g,"coordY":%g}}}]}`, x, y)}
	for i := 0; i < 30; i++ {
		plays = append(plays, `{"result":{"eventType":"strikeout","description":"called out on strikes"},"playEvents":[{"details":{"isInPlay":false}}]}`)
	}
	return []byte(`{"allPlays":[` + strings.Join(plays, ",") + `],"playsByInning":[{"hits":{"home":[{"team":{"id":147}}]}}]}`)
}

func gameDoc(x, y float64) *model.GameDocument {
	doc, err := model.DecodeGameDocument(gameRaw(x, y))
	if err != nil {
		panic(err)
	}
	return doc
}

type fakeSource struct {
	mu     sync.Mutex
	calls  []int64
	fail   map[int64]bool
	onCall func(gamePK int64)
}

func (f *fakeSource) PlayByPlay(_ context.Context, gamePK int64) (*model.GameDocument, error) {
	f.mu.Lock()
	f.calls = append(f.calls, gamePK)
	fail := f.fail[gamePK]
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall(gamePK)
	}
	if fail {
		return nil, errors.New("upstream 503")
	}
	return gameDoc(150, 175), nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingObserver struct {
	started  int
	games    []service.Progress
	finished []service.FetchStats
	errs     []error
}

func (o *recordingObserver) OnFetchStart(context.Context, string, int) { o.started++ }
func (o *recordingObserver) OnGame(_ context.Context, p service.Progress) {
	o.games = append(o.games, p)
}
func (o *recordingObserver) OnFetchFinish(_ context.Context, s service.FetchStats, err error) {
	o.finished = append(o.finished, s)
	o.errs = append(o.errs, err)
}

func schedule(pks ...string) []model.ScheduledGame {
	out := make([]model.ScheduledGame, 0, len(pks))
	for i, pk := range pks {
		out = append(out, model.ScheduledGame{
			Line:     i + 2,
			GamePK:   pk,
			Date:     "2024-04-01",
			HomeTeam: "NYY",
			AwayTeam: "BOS",
		})
	}
	return out
}
