// Package schedule reads the schedule CSV produced by the schedule fetcher.
package schedule

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
)

// Column names.
const (
	ColGamePK   = "game_pk"
	ColDate     = "date"
	ColHomeTeam = "home_team"
	ColAwayTeam = "away_team"
	ColHomeID   = "home_id"
	ColAwayID   = "away_id"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{ColGamePK, ColDate, ColHomeTeam, ColAwayTeam}

// Reader parses schedule CSVs.
type Reader struct {
	log logger.Logger
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get().Named("schedule")
	}
	return r
}

// ReadFile opens path and parses it with Read.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]model.ScheduledGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	games, err := r.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.log.Info(ctx, "schedule loaded", logger.String("path", path), logger.Int("games", len(games)))
	return games, nil
}

// Read parses a schedule with a header row. Rows whose game_pk, home_id or
// away_id (when those columns exist) are blank are dropped.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]model.ScheduledGame, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrEmptySchedule)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	idx := indexColumns(header)
	if missing := missingColumns(idx); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (available: %s)",
			ErrMissingColumns, strings.Join(missing, ", "), strings.Join(normalized(header), ", "))
	}

	var (
		games   []model.ScheduledGame
		rows    int
		dropped int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		rows++
		line, _ := cr.FieldPos(0)

		if blank(rec, idx, ColGamePK) || blank(rec, idx, ColHomeID) || blank(rec, idx, ColAwayID) {
			dropped++
			continue
		}
		games = append(games, model.ScheduledGame{
			Line:     line,
			GamePK:   field(rec, idx, ColGamePK),
			Date:     field(rec, idx, ColDate),
			HomeTeam: field(rec, idx, ColHomeTeam),
			AwayTeam: field(rec, idx, ColAwayTeam),
		})
	}

	if dropped > 0 {
		r.log.Warn(ctx, "schedule rows with missing identifiers dropped",
			logger.Int("dropped", dropped), logger.Int("rows", rows))
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: %d data rows, %d dropped", ErrEmptySchedule, rows, dropped)
	}
	return games, nil
}

func normalized(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	return out
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range normalized(header) {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func missingColumns(idx map[string]int) []string {
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return missing
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// blank reports whether col exists and is empty in rec.
func blank(rec []string, idx map[string]int, col string) bool {
	if _, ok := idx[col]; !ok {
		return false
	}
	return field(rec, idx, col) == ""
}
