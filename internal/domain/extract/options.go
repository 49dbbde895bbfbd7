package extract

import (
	"github.com/okian/mlbspray/internal/domain/geometry"
	"github.com/okian/mlbspray/pkg/logger"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithReference sets the home plate reference point.
func WithReference(p geometry.Point) Option {
	return func(e *Extractor) {
		e.ref = p
	}
}

// WithSectorTable replaces the default sector table.
func WithSectorTable(t geometry.SectorTable) Option {
	return func(e *Extractor) {
		if t != nil {
			e.sectors = t
		}
	}
}

// WithMinContentSize sets the raw payload size below which a document is
// treated as empty.
func WithMinContentSize(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.minContent = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}
