package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrNoTextfilePath = errors.New("metrics textfile path is empty")
	ErrTextfileWrite  = errors.New("metrics textfile write failed")
)
