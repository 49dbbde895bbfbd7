package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
	"github.com/okian/mlbspray/pkg/metrics"
)

// FetchOptions tunes a single Fetch run.
type FetchOptions struct {
	// ForceRefresh refetches games even when a valid artifact exists.
	ForceRefresh bool
}

// FetchStats counts what a Fetch run did.
type FetchStats struct {
	RunID   string
	Total   int
	Cached  int
	Skipped int
	Failed  int
	Invalid int
}

// Fetch walks the schedule in order and caches every game that is not
// already cached. Remote failures are counted and skipped; a cache write
// failure or context cancellation stops the run and returns the counts so
// far along with the error. Artifacts written before the stop stay valid, so
// a rerun resumes where this one ended.
func (s *Service) Fetch(ctx context.Context, games []model.ScheduledGame, opts FetchOptions) (stats FetchStats, err error) {
	if len(games) == 0 {
		return stats, ErrEmptySchedule
	}
	if s.source == nil {
		return stats, ErrNoSource
	}
	if err = s.begin(); err != nil {
		return stats, err
	}
	defer s.end()

	stats = FetchStats{RunID: s.newRunID(), Total: len(games)}
	log := s.logger.With(logger.String("run_id", stats.RunID))
	start := time.Now()

	s.observer.OnFetchStart(ctx, stats.RunID, stats.Total)
	defer func() {
		metrics.RecordRunDuration(metrics.RunFetch, time.Since(start).Seconds(), time.Now().Unix())
		s.observer.OnFetchFinish(ctx, stats, err)
	}()

	log.Info(ctx, "fetch run started",
		logger.Int("games", stats.Total),
		logger.Bool("force_refresh", opts.ForceRefresh),
	)

	for i, game := range games {
		if err = ctx.Err(); err != nil {
			break
		}

		p := Progress{RunID: stats.RunID, Index: i + 1, Total: stats.Total, Game: game}
		cached, stop := s.fetchOne(ctx, log, &stats, &p, opts)
		s.observer.OnGame(ctx, p)
		if stop != nil {
			err = stop
			break
		}

		if cached && i < len(games)-1 {
			if err = sleep(ctx, s.delay); err != nil {
				break
			}
		}
	}

	log.Info(ctx, "fetch run finished",
		logger.Int("cached", stats.Cached),
		logger.Int("skipped", stats.Skipped),
		logger.Int("failed", stats.Failed),
		logger.Int("invalid", stats.Invalid),
		logger.Float64("seconds", time.Since(start).Seconds()),
	)
	return stats, err
}

// fetchOne handles one schedule row. It reports whether a game was fetched
// and cached, and returns a non-nil error only when the run must stop.
func (s *Service) fetchOne(ctx context.Context, log logger.Logger, stats *FetchStats, p *Progress, opts FetchOptions) (bool, error) {
	ref, err := p.Game.Ref()
	if err != nil {
		stats.Invalid++
		metrics.RecordGameInvalid()
		p.Outcome, p.Err = OutcomeInvalid, err
		log.Warn(ctx, "skipping invalid schedule row",
			logger.Int("line", p.Game.Line),
			logger.String("game_pk", p.Game.GamePK),
			logger.Error(err),
		)
		return false, nil
	}

	p.Ref = ref
	p.Path = s.store.Path(ref)

	if !opts.ForceRefresh && s.store.IsValid(ctx, p.Path) {
		stats.Skipped++
		metrics.RecordGameSkipped()
		p.Outcome = OutcomeSkipped
		log.Debug(ctx, "cached artifact reused", logger.Int64("game_pk", ref.GamePK), logger.String("path", p.Path))
		return false, nil
	}

	doc, err := s.source.PlayByPlay(ctx, ref.GamePK)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.Outcome, p.Err = OutcomeFailed, ctxErr
			return false, ctxErr
		}
		stats.Failed++
		metrics.RecordFetchFailed()
		p.Outcome, p.Err = OutcomeFailed, err
		log.Warn(ctx, "play-by-play fetch failed",
			logger.Int64("game_pk", ref.GamePK),
			logger.Error(err),
		)
		return false, nil
	}

	if err := s.store.Write(ctx, p.Path, doc); err != nil {
		werr := fmt.Errorf("%w: game %d: %w", ErrCacheWrite, ref.GamePK, err)
		p.Outcome, p.Err = OutcomeFailed, werr
		metrics.RecordErrorByComponent("cache", "write")
		log.Error(ctx, "cache write failed, stopping run",
			logger.Int64("game_pk", ref.GamePK),
			logger.String("path", p.Path),
			logger.Error(err),
		)
		return false, werr
	}

	stats.Cached++
	metrics.RecordGameCached()
	p.Outcome = OutcomeCached
	log.Debug(ctx, "game cached", logger.Int64("game_pk", ref.GamePK), logger.String("path", p.Path))
	return true, nil
}
