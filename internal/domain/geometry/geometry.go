// Package geometry derives spray angle, hit distance and field sector from
// chart coordinates.
package geometry

import "math"

// Point is a location in chart units.
type Point struct {
	X float64
	Y float64
}

// HomePlate is the default reference point of the chart.
var HomePlate = Point{X: 125.0, Y: 199.0}

// Spray is the polar position of a landing point relative to home plate.
type Spray struct {
	// Angle is atan2(dx, dy) in degrees, in (-180, 180].
	Angle float64
	// Distance is the Euclidean distance in chart units.
	Distance float64
}

// Compute returns the spray of (x, y) relative to ref.
func Compute(x, y float64, ref Point) Spray {
	dx := x - ref.X
	dy := y - ref.Y
	return Spray{
		Angle:    math.Atan2(dx, dy) * 180 / math.Pi,
		Distance: math.Hypot(dx, dy),
	}
}

// Centerline folds a spray angle onto the angle off the line from home plate
// to center field. Negative is the left-field side.
func Centerline(angle float64) float64 {
	return math.Copysign(180-math.Abs(angle), angle)
}
