package geometry

import "errors"

var (
	ErrEmptyTable = errors.New("sector table has no ranges")
	ErrBadRange   = errors.New("invalid sector range")
)
