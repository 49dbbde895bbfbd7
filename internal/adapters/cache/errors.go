package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrNotFound       = errors.New("cache artifact not found")
	ErrParse          = errors.New("cache artifact is not valid JSON")
	ErrReadFailed     = errors.New("cache artifact read failed")
	ErrWriteFailed    = errors.New("cache artifact write failed")
	ErrSeasonNotFound = errors.New("season directory not found")
)
