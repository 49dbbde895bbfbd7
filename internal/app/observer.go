package service

import (
	"context"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
)

// Outcome is what happened to one schedule row during Fetch.
type Outcome string

// Fetch outcomes.
const (
	OutcomeCached  Outcome = "cached"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	OutcomeInvalid Outcome = "invalid"
)

// Progress describes one processed schedule row.
type Progress struct {
	RunID   string
	Index   int // 1-based
	Total   int
	Game    model.ScheduledGame
	Ref     model.GameRef
	Path    string
	Outcome Outcome
	Err     error
}

// Observer receives fetch progress. Calls happen on the fetch goroutine.
type Observer interface {
	OnFetchStart(ctx context.Context, runID string, total int)
	OnGame(ctx context.Context, p Progress)
	OnFetchFinish(ctx context.Context, stats FetchStats, err error)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnFetchStart(context.Context, string, int)       {}
func (NopObserver) OnGame(context.Context, Progress)                {}
func (NopObserver) OnFetchFinish(context.Context, FetchStats, error) {}

// LogObserver reports progress through a logger every Every games and on
// the last one.
type LogObserver struct {
	Logger logger.Logger
	Every  int
}

// OnFetchStart implements Observer.
func (o LogObserver) OnFetchStart(ctx context.Context, runID string, total int) {
	o.Logger.Info(ctx, "fetch started", logger.String("run_id", runID), logger.Int("games", total))
}

// OnGame implements Observer.
func (o LogObserver) OnGame(ctx context.Context, p Progress) {
	every := o.Every
	if every <= 0 {
		every = 1
	}
	if p.Index%every != 0 && p.Index != p.Total {
		return
	}
	o.Logger.Info(ctx, "fetch progress",
		logger.Int("done", p.Index),
		logger.Int("total", p.Total),
		logger.String("last_outcome", string(p.Outcome)),
		logger.String("game_pk", p.Game.GamePK),
	)
}

// OnFetchFinish implements Observer.
func (o LogObserver) OnFetchFinish(ctx context.Context, stats FetchStats, err error) {
	fields := []logger.Field{
		logger.String("run_id", stats.RunID),
		logger.Int("cached", stats.Cached),
		logger.Int("skipped", stats.Skipped),
		logger.Int("failed", stats.Failed),
		logger.Int("invalid", stats.Invalid),
	}
	if err != nil {
		o.Logger.Error(ctx, "fetch stopped", append(fields, logger.Error(err))...)
		return
	}
	o.Logger.Info(ctx, "fetch finished", fields...)
}
