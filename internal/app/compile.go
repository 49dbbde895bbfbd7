package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/mlbspray/internal/adapters/cache"
	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
	"github.com/okian/mlbspray/pkg/metrics"
)

// CompileStats counts what a Compile run did.
type CompileStats struct {
	RunID    string
	Season   int
	Files    int
	Compiled int
	Skipped  int
	Records  int
}

// Compile reads every cached artifact of season and returns the combined hit
// table in file order. Undersized or unreadable files are skipped. Compile
// never writes to the cache.
func (s *Service) Compile(ctx context.Context, season int) ([]model.HitEvent, CompileStats, error) {
	stats := CompileStats{RunID: s.newRunID(), Season: season}
	log := s.logger.With(logger.String("run_id", stats.RunID), logger.Int("season", season))
	start := time.Now()
	defer func() {
		metrics.RecordRunDuration(metrics.RunCompile, time.Since(start).Seconds(), time.Now().Unix())
	}()

	paths, err := s.store.List(ctx, season)
	if err != nil {
		if errors.Is(err, cache.ErrSeasonNotFound) {
			return nil, stats, fmt.Errorf("%w: %d: %w", ErrSeasonNotFound, season, err)
		}
		return nil, stats, err
	}
	if len(paths) == 0 {
		return nil, stats, fmt.Errorf("%w: %d", ErrNoArtifacts, season)
	}
	stats.Files = len(paths)
	log.Info(ctx, "compile run started", logger.Int("files", stats.Files))

	var events []model.HitEvent
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		size, err := s.store.Size(ctx, path)
		if err != nil {
			stats.Skipped++
			metrics.RecordCompiledFile(metrics.FileInvalid)
			log.Warn(ctx, "skipping unreadable artifact", logger.String("path", path), logger.Error(err))
			continue
		}
		if size < s.minContent {
			stats.Skipped++
			metrics.RecordCompiledFile(metrics.FileSkipped)
			log.Debug(ctx, "skipping undersized artifact", logger.String("path", path), logger.Int64("bytes", size))
			continue
		}

		doc, err := s.store.Read(ctx, path)
		if err != nil {
			stats.Skipped++
			metrics.RecordCompiledFile(metrics.FileInvalid)
			log.Warn(ctx, "skipping unparseable artifact", logger.String("path", path), logger.Error(err))
			continue
		}

		found := s.extractor.Extract(ctx, doc)
		stats.Compiled++
		metrics.RecordCompiledFile(metrics.FileCompiled)
		events = append(events, found...)
	}

	stats.Records = len(events)
	metrics.RecordHitEvents(stats.Records)
	if stats.Records == 0 {
		return nil, stats, fmt.Errorf("%w: season %d, %d files", ErrNoHitEvents, season, stats.Files)
	}

	log.Info(ctx, "compile run finished",
		logger.Int("compiled", stats.Compiled),
		logger.Int("skipped", stats.Skipped),
		logger.Int("records", stats.Records),
		logger.Float64("seconds", time.Since(start).Seconds()),
	)
	return events, stats, nil
}
