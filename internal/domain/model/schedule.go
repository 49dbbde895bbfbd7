package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ScheduledGame is one schedule row as read, before validation.
type ScheduledGame struct {
	Line     int
	GamePK   string
	Date     string
	HomeTeam string
	AwayTeam string
}

// GameRef is a validated reference to one scheduled game.
type GameRef struct {
	GamePK   int64
	Date     time.Time
	HomeTeam string
	AwayTeam string
}

// Season is the calendar year the game was played in.
func (r GameRef) Season() int {
	return r.Date.Year()
}

// Ref validates the row and converts it into a GameRef.
func (g ScheduledGame) Ref() (GameRef, error) {
	pk, err := parseGamePK(g.GamePK)
	if err != nil {
		return GameRef{}, err
	}

	date, err := parseDate(g.Date)
	if err != nil {
		return GameRef{}, err
	}

	home := strings.TrimSpace(g.HomeTeam)
	away := strings.TrimSpace(g.AwayTeam)
	if home == "" || away == "" {
		return GameRef{}, fmt.Errorf("%w: home=%q away=%q", ErrMissingTeam, g.HomeTeam, g.AwayTeam)
	}

	return GameRef{GamePK: pk, Date: date, HomeTeam: home, AwayTeam: away}, nil
}

// parseGamePK accepts integers and integral floats such as "745123.0",
// which spreadsheet round-trips tend to produce.
func parseGamePK(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidGamePK)
	}
	if pk, err := strconv.ParseInt(s, 10, 64); err == nil {
		if pk <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidGamePK, pk)
		}
		return pk, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != float64(int64(f)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGamePK, s)
	}
	return int64(f), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
