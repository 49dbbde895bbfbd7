// Package cache persists play-by-play documents on disk, one file per game,
// grouped by season.
package cache

import (
	"context"

	"github.com/okian/mlbspray/internal/domain/model"
)

// Store provides read/write access to cached game artifacts.
type Store interface {
	// Path derives the artifact location for a game. It is pure.
	Path(ref model.GameRef) string
	// SeasonDir returns the directory holding a season's artifacts.
	SeasonDir(season int) string

	// IsValid reports whether the artifact at path can be reused without
	// refetching. Any error reading metadata yields false.
	IsValid(ctx context.Context, path string) bool

	// Write persists doc at path, replacing any previous artifact atomically.
	// Returns ErrWriteFailed on failure.
	Write(ctx context.Context, path string, doc *model.GameDocument) error

	// Read loads the artifact at path.
	// Returns ErrNotFound, ErrParse or ErrReadFailed.
	Read(ctx context.Context, path string) (*model.GameDocument, error)

	// Size returns the artifact size in bytes. Returns ErrNotFound if absent.
	Size(ctx context.Context, path string) (int64, error)

	// List returns the sorted artifact paths of a season.
	// Returns ErrSeasonNotFound if the season directory is missing.
	List(ctx context.Context, season int) ([]string, error)
}
