package model

import "strconv"

// HitColumns is the fixed column order of the hit table.
var HitColumns = []string{
	"start_time", "end_time", "home_team", "half_inning", "inning",
	"at_bat_index", "outcome", "description",
	"batter_id", "batter_hand", "batter_name",
	"pitcher_id", "pitcher_hand", "pitcher_name",
	"count_outs", "count_balls", "count_strikes",
	"location", "launch_speed", "launch_angle",
	"hit_trajectory", "hit_hardness", "total_distance",
	"hit_location_x", "hit_location_y",
	"hit_sector", "hit_distance", "spray_angle",
}

// HitEvent is one in-play pitch event with landing coordinates, flattened
// and enriched with derived geometry.
type HitEvent struct {
	StartTime   NullString
	EndTime     NullString
	HomeTeam    NullInt
	HalfInning  NullString
	Inning      NullInt
	AtBatIndex  NullInt
	Outcome     NullString
	Description NullString

	BatterID    NullInt
	BatterHand  NullString
	BatterName  NullString
	PitcherID   NullInt
	PitcherHand NullString
	PitcherName NullString

	CountOuts    NullInt
	CountBalls   NullInt
	CountStrikes NullInt

	Location      NullString
	LaunchSpeed   NullFloat
	LaunchAngle   NullFloat
	HitTrajectory NullString
	HitHardness   NullString
	TotalDistance NullFloat

	HitLocationX float64
	HitLocationY float64
	HitSector    string
	HitDistance  float64
	SprayAngle   float64
}

// Values renders the event in HitColumns order. Absent values are "".
func (e HitEvent) Values() []string {
	return []string{
		e.StartTime.String(),
		e.EndTime.String(),
		e.HomeTeam.String(),
		e.HalfInning.String(),
		e.Inning.String(),
		e.AtBatIndex.String(),
		e.Outcome.String(),
		e.Description.String(),
		e.BatterID.String(),
		e.BatterHand.String(),
		e.BatterName.String(),
		e.PitcherID.String(),
		e.PitcherHand.String(),
		e.PitcherName.String(),
		e.CountOuts.String(),
		e.CountBalls.String(),
		e.CountStrikes.String(),
		e.Location.String(),
		e.LaunchSpeed.String(),
		e.LaunchAngle.String(),
		e.HitTrajectory.String(),
		e.HitHardness.String(),
		e.TotalDistance.String(),
		formatFloat(e.HitLocationX),
		formatFloat(e.HitLocationY),
		e.HitSector,
		formatFloat(e.HitDistance),
		formatFloat(e.SprayAngle),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
