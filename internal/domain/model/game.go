// Package model contains the domain types passed between layers: the
// play-by-play document tree, schedule rows, and flattened hit events.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GameDocument is the play-by-play payload for one game. Keys follow the
// Stats API camelCase; decoding is case-insensitive.
type GameDocument struct {
	AllPlays      []Play        `json:"allPlays"`
	PlaysByInning []InningPlays `json:"playsByInning,omitempty"`

	// Raw holds the verbatim bytes the document was decoded from.
	Raw json.RawMessage `json:"-"`
}

// Play is one plate appearance.
type Play struct {
	About      About       `json:"about"`
	Result     Result      `json:"result"`
	Matchup    Matchup     `json:"matchup"`
	PlayEvents []PlayEvent `json:"playEvents"`
}

// About carries timing and inning context of a play.
type About struct {
	StartTime  NullString `json:"startTime"`
	EndTime    NullString `json:"endTime"`
	HalfInning NullString `json:"halfInning"`
	Inning     NullInt    `json:"inning"`
	AtBatIndex NullInt    `json:"atBatIndex"`
}

// Result is the outcome of a play.
type Result struct {
	EventType   NullString `json:"eventType"`
	Description NullString `json:"description"`
}

// Person identifies a batter or pitcher.
type Person struct {
	ID       NullInt    `json:"id"`
	FullName NullString `json:"fullName"`
}

// Code wraps a single-letter code such as handedness.
type Code struct {
	Code NullString `json:"code"`
}

// Matchup is the batter/pitcher pairing.
type Matchup struct {
	Batter    Person `json:"batter"`
	BatSide   Code   `json:"batSide"`
	Pitcher   Person `json:"pitcher"`
	PitchHand Code   `json:"pitchHand"`
}

// PlayEvent is one pitch or action inside a play.
type PlayEvent struct {
	Details EventDetails `json:"details"`
	Count   Count        `json:"count"`
	HitData *HitData     `json:"hitData,omitempty"`
}

// EventDetails flags the event.
type EventDetails struct {
	IsInPlay NullBool `json:"isInPlay"`
}

// Count is the ball/strike/out count at the event.
type Count struct {
	Balls   NullInt `json:"balls"`
	Strikes NullInt `json:"strikes"`
	Outs    NullInt `json:"outs"`
}

// HitData describes a batted ball.
type HitData struct {
	LaunchSpeed   NullFloat   `json:"launchSpeed"`
	LaunchAngle   NullFloat   `json:"launchAngle"`
	TotalDistance NullFloat   `json:"totalDistance"`
	Trajectory    NullString  `json:"trajectory"`
	Hardness      NullString  `json:"hardness"`
	Location      NullString  `json:"location"`
	Coordinates   Coordinates `json:"coordinates"`
}

// Coordinates is the landing point in chart units.
type Coordinates struct {
	CoordX NullFloat `json:"coordX"`
	CoordY NullFloat `json:"coordY"`
}

// InningPlays groups per-inning hit markers.
type InningPlays struct {
	Hits InningHits `json:"hits"`
}

// InningHits splits hit markers by side.
type InningHits struct {
	Home []HitMarker `json:"home"`
	Away []HitMarker `json:"away"`
}

// HitMarker references the team credited with a hit.
type HitMarker struct {
	Team TeamRef `json:"team"`
}

// TeamRef is a team identifier.
type TeamRef struct {
	ID NullInt `json:"id"`
}

// DecodeGameDocument parses raw into a document and keeps raw on it.
// Fields of an unexpected shape are left empty; only malformed JSON fails.
func DecodeGameDocument(raw []byte) (*GameDocument, error) {
	doc := &GameDocument{}
	if err := json.Unmarshal(raw, doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}
	doc.Raw = raw
	return doc, nil
}

// HomeTeamID returns the first home-side team id recorded in playsByInning.
func (d *GameDocument) HomeTeamID() NullInt {
	for _, inning := range d.PlaysByInning {
		for _, hit := range inning.Hits.Home {
			if hit.Team.ID.Valid {
				return hit.Team.ID
			}
		}
	}
	return NullInt{}
}
