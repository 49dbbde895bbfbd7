package service

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrRunInProgress  = errors.New("another run is in progress")
	ErrNoSource       = errors.New("no play-by-play source configured")
	ErrEmptySchedule  = errors.New("schedule is empty")
	ErrCacheWrite     = errors.New("cache write failed")
	ErrSeasonNotFound = errors.New("season not found in cache")
	ErrNoArtifacts    = errors.New("season has no cached games")
	ErrNoHitEvents    = errors.New("no hit events extracted")
)
