package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrOpen           = errors.New("schedule open failed")
	ErrMalformed      = errors.New("schedule is not valid CSV")
	ErrMissingColumns = errors.New("schedule missing required columns")
	ErrEmptySchedule  = errors.New("schedule has no games")
)
