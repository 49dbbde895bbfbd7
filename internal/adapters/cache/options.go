package cache

import (
	"os"
	"strings"

	"github.com/okian/mlbspray/pkg/logger"
)

// Validation selects how IsValid judges an existing artifact.
type Validation string

const (
	// ValidateSize trusts any file larger than the minimum size.
	ValidateSize Validation = "size"
	// ValidateContent additionally requires a JSON object with an allPlays key.
	ValidateContent Validation = "content"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithMinValidSize sets the size in bytes an artifact must exceed to be valid.
func WithMinValidSize(n int64) Option {
	return func(s *FileStore) {
		if n >= 0 {
			s.minValidSize = n
		}
	}
}

// WithValidation sets the validation mode. Unknown modes are ignored.
func WithValidation(v Validation) Option {
	return func(s *FileStore) {
		switch Validation(strings.ToLower(string(v))) {
		case ValidateSize:
			s.validation = ValidateSize
		case ValidateContent:
			s.validation = ValidateContent
		}
	}
}

// WithFileMode sets the permission bits of written artifacts.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}
