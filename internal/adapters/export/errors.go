package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrWrite = errors.New("hit table write failed")
)
