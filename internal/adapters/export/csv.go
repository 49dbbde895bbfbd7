// Package export writes compiled hit tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/mlbspray/internal/domain/model"
)

// FileName returns the table file name for a season.
func FileName(season int) string {
	return fmt.Sprintf("MLB_HIT_DATA_%d.csv", season)
}

// WriteCSV writes the header followed by one row per event.
func WriteCSV(w io.Writer, events []model.HitEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.HitColumns); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	for i := range events {
		if err := cw.Write(events[i].Values()); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrWrite, i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile writes the season table into dir, replacing any previous file
// atomically, and returns its path.
func WriteFile(dir string, season int, events []model.HitEvent) (path string, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	path = filepath.Join(dir, FileName(season))

	tmp, err := os.CreateTemp(dir, "."+FileName(season)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteCSV(tmp, events); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return path, nil
}
