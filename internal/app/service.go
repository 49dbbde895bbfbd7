// Package service wires the cache, the remote source and the extractor into
// the two pipeline runs: fetch-and-cache and season compilation.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mlbspray/internal/adapters/cache"
	"github.com/okian/mlbspray/internal/domain/extract"
	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
)

// Defaults.
const (
	DefaultRateLimitDelay = 100 * time.Millisecond
	DefaultMinContentSize = extract.DefaultMinContentSize
)

// Source fetches one game's play-by-play document.
type Source interface {
	PlayByPlay(ctx context.Context, gamePK int64) (*model.GameDocument, error)
}

// Extractor flattens a document into hit events.
type Extractor interface {
	Extract(ctx context.Context, doc *model.GameDocument) []model.HitEvent
}

// Service runs the pipeline. Runs are strictly sequential: a second run
// started while one is active fails with ErrRunInProgress.
type Service struct {
	mu      sync.Mutex
	running bool

	store     cache.Store
	source    Source
	extractor Extractor
	observer  Observer

	delay      time.Duration
	minContent int64

	newRunID func() string
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the remote play-by-play source used by Fetch.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithExtractor replaces the default extractor used by Compile.
func WithExtractor(e Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithObserver sets the progress observer.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithRateLimitDelay sets the pause after each successful remote fetch.
func WithRateLimitDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithMinContentSize sets the artifact size below which Compile skips a file.
func WithMinContentSize(n int64) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minContent = n
		}
	}
}

// WithRunIDGenerator replaces the uuid run id generator.
func WithRunIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service over store.
func New(store cache.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		observer:   NopObserver{},
		delay:      DefaultRateLimitDelay,
		minContent: DefaultMinContentSize,
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.extractor == nil {
		s.extractor = extract.New(extract.WithLogger(s.logger.Named("extract")))
	}
	return s
}

// begin marks a run active.
func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrRunInProgress
	}
	s.running = true
	return nil
}

func (s *Service) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
