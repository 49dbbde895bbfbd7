package statsapi

import "errors"

// Sentinel kinds for Stats API errors.
var (
	ErrInvalidGamePK    = errors.New("invalid game pk")
	ErrRequest          = errors.New("stats api request failed")
	ErrUnexpectedStatus = errors.New("stats api unexpected status")
	ErrBodyTooLarge     = errors.New("stats api response too large")
	ErrDecode           = errors.New("stats api response decode failed")
)
