package model

import "errors"

// Sentinel errors for domain model parsing.
var (
	ErrMalformedDocument = errors.New("malformed game document")
	ErrInvalidGamePK     = errors.New("invalid game_pk")
	ErrInvalidDate       = errors.New("invalid game date")
	ErrMissingTeam       = errors.New("missing team code")
)
