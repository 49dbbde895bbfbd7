// Package extract flattens play-by-play documents into hit events.
package extract

import (
	"context"

	"github.com/okian/mlbspray/internal/domain/geometry"
	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
)

// DefaultMinContentSize is the smallest raw payload worth extracting.
const DefaultMinContentSize = 100

// Extractor turns one GameDocument into zero or more HitEvents.
type Extractor struct {
	ref        geometry.Point
	sectors    geometry.SectorTable
	minContent int
	log        logger.Logger
}

// New creates an Extractor with the default reference point and sectors.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		ref:        geometry.HomePlate,
		sectors:    geometry.DefaultSectors,
		minContent: DefaultMinContentSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get().Named("extract")
	}
	return e
}

// Extract returns one event per in-play pitch event that has both landing
// coordinates, in play then event order.
func (e *Extractor) Extract(ctx context.Context, doc *model.GameDocument) []model.HitEvent {
	if doc == nil || len(doc.AllPlays) == 0 {
		return nil
	}
	if doc.Raw != nil && len(doc.Raw) < e.minContent {
		e.log.Debug(ctx, "document below minimum content size", logger.Int("bytes", len(doc.Raw)))
		return nil
	}

	home := doc.HomeTeamID()
	var out []model.HitEvent
	var missing int

	for i := range doc.AllPlays {
		play := &doc.AllPlays[i]
		base := playConstants(play, home)

		for j := range play.PlayEvents {
			ev := &play.PlayEvents[j]
			if !ev.Details.IsInPlay.True() {
				continue
			}
			if ev.HitData == nil || !ev.HitData.Coordinates.CoordX.Valid || !ev.HitData.Coordinates.CoordY.Valid {
				missing++
				continue
			}
			out = append(out, e.hitEvent(base, ev))
		}
	}

	if missing > 0 {
		e.log.Debug(ctx, "in-play events without coordinates skipped", logger.Int("count", missing))
	}
	return out
}

func playConstants(play *model.Play, home model.NullInt) model.HitEvent {
	return model.HitEvent{
		StartTime:   play.About.StartTime,
		EndTime:     play.About.EndTime,
		HomeTeam:    home,
		HalfInning:  play.About.HalfInning,
		Inning:      play.About.Inning,
		AtBatIndex:  play.About.AtBatIndex,
		Outcome:     play.Result.EventType,
		Description: play.Result.Description,
		BatterID:    play.Matchup.Batter.ID,
		BatterHand:  play.Matchup.BatSide.Code,
		BatterName:  play.Matchup.Batter.FullName,
		PitcherID:   play.Matchup.Pitcher.ID,
		PitcherHand: play.Matchup.PitchHand.Code,
		PitcherName: play.Matchup.Pitcher.FullName,
	}
}

func (e *Extractor) hitEvent(base model.HitEvent, ev *model.PlayEvent) model.HitEvent {
	hd := ev.HitData
	x, y := hd.Coordinates.CoordX.Value, hd.Coordinates.CoordY.Value
	spray := geometry.Compute(x, y, e.ref)

	out := base
	out.CountOuts = ev.Count.Outs
	out.CountBalls = ev.Count.Balls
	out.CountStrikes = ev.Count.Strikes
	out.Location = hd.Location
	out.LaunchSpeed = hd.LaunchSpeed
	out.LaunchAngle = hd.LaunchAngle
	out.HitTrajectory = hd.Trajectory
	out.HitHardness = hd.Hardness
	out.TotalDistance = hd.TotalDistance
	out.HitLocationX = x
	out.HitLocationY = y
	out.HitSector = e.sectors.Sector(spray.Angle)
	out.HitDistance = spray.Distance
	out.SprayAngle = spray.Angle
	return out
}
