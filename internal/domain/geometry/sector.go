package geometry

import (
	"fmt"
	"sort"
)

// Sector labels of the default table.
const (
	LeftField        = "LF"
	LeftCenterField  = "LCF"
	CenterField      = "CF"
	RightCenterField = "RCF"
	RightField       = "RF"
	Foul             = "FOUL"
)

// SectorTable maps a spray angle to a field sector label.
type SectorTable interface {
	Sector(angle float64) string
}

// SectorFunc adapts a plain function to SectorTable.
type SectorFunc func(angle float64) string

// Sector implements SectorTable.
func (f SectorFunc) Sector(angle float64) string { return f(angle) }

// Range is a band of centerline angles [Min, Max) labelled Label.
type Range struct {
	Label string
	Min   float64
	Max   float64
}

// RangeTable buckets the centerline angle of a spray into ordered ranges.
// Angles outside every range get Fallback.
type RangeTable struct {
	ranges   []Range
	fallback string
}

// NewRangeTable validates and sorts ranges. Overlapping or empty ranges are
// rejected.
func NewRangeTable(ranges []Range, fallback string) (*RangeTable, error) {
	if len(ranges) == 0 {
		return nil, ErrEmptyTable
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, r := range sorted {
		if r.Label == "" || r.Min >= r.Max {
			return nil, fmt.Errorf("%w: %q [%g, %g)", ErrBadRange, r.Label, r.Min, r.Max)
		}
		if i > 0 && r.Min < sorted[i-1].Max {
			return nil, fmt.Errorf("%w: %q overlaps %q", ErrBadRange, r.Label, sorted[i-1].Label)
		}
	}
	return &RangeTable{ranges: sorted, fallback: fallback}, nil
}

// Sector implements SectorTable.
func (t *RangeTable) Sector(angle float64) string {
	phi := Centerline(angle)
	for _, r := range t.ranges {
		if phi >= r.Min && phi < r.Max {
			return r.Label
		}
	}
	return t.fallback
}

// DefaultSectors buckets the centerline angle into five 18 degree fair
// sectors. The center sector is closed on both ends, the outer bounds are
// closed toward the center.
var DefaultSectors SectorTable = SectorFunc(func(angle float64) string {
	phi := Centerline(angle)
	switch {
	case phi >= -45 && phi < -27:
		return LeftField
	case phi >= -27 && phi < -9:
		return LeftCenterField
	case phi >= -9 && phi <= 9:
		return CenterField
	case phi > 9 && phi <= 27:
		return RightCenterField
	case phi > 27 && phi <= 45:
		return RightField
	default:
		return Foul
	}
})
