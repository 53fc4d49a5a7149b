// Package angle resolves angle inputs to canonical radians and folds them
// into the half-open ranges the orbital elements are stored in.
//
// An angle crosses the package boundary either as a bare float64, which is
// taken to be radians, or tagged with its unit. The tag is resolved once by
// ToRadians; nothing downstream branches on the input's origin.
package angle

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// Tag identifies how the numeric value of an Input is to be read.
type Tag int

const (
	// Bare marks an untagged value, read as radians.
	Bare Tag = iota
	// Radians marks a value tagged as radians.
	Radians
	// Degrees marks a value tagged as degrees.
	Degrees
)

func (t Tag) String() string {
	switch t {
	case Radians:
		return "rad"
	case Degrees:
		return "deg"
	default:
		return "bare"
	}
}

// Input is an angle as supplied by a caller.
// The zero value is a bare zero.
type Input struct {
	value float64
	tag   Tag
}

// Raw returns a bare angle whose value is taken to be radians.
func Raw(rad float64) Input { return Input{value: rad, tag: Bare} }

// Of tags a gonum angle.
func Of(a unit.Angle) Input { return Input{value: float64(a), tag: Radians} }

// Deg returns an angle tagged as degrees.
func Deg(deg float64) Input { return Input{value: deg, tag: Degrees} }

// Value returns the number as supplied, in the unit named by Tag.
func (in Input) Value() float64 { return in.value }

// Tag returns the unit tag of the input.
func (in Input) Tag() Tag { return in.tag }

// Tagged reports whether the input carries an explicit unit.
func (in Input) Tagged() bool { return in.tag != Bare }

// ToRadians converts the input to radians. It has no failure path.
func ToRadians(in Input) float64 {
	if in.tag == Degrees {
		return in.value * deg2rad
	}
	return in.value
}

// Wrap converts in to radians and folds it into [min, max) by at most one
// full turn in each direction: a value above max loses 2π, then a value
// still below min gains 2π.
//
// Only inputs within one turn of the target range come back inside it.
// Callers must not pass angles that are off by several turns; those are
// returned shifted by a single turn and will fail any later range check.
func Wrap(in Input, min, max float64) float64 {
	r := ToRadians(in)
	if r > max {
		r -= TwoPi
	}
	if r < min {
		r += TwoPi
	}
	return r
}

// WrapTwoPi folds in into [0, 2π) under the same single-turn rule as Wrap.
func WrapTwoPi(in Input) float64 {
	return Wrap(in, 0, TwoPi)
}

// ToDegrees returns a in degrees, for display.
func ToDegrees(a unit.Angle) float64 {
	return float64(a) * rad2deg
}

// Rate is an angular rate in radians per day.
type Rate float64

// RadiansPerSecond returns the rate in rad/s.
func (r Rate) RadiansPerSecond() float64 { return float64(r) / 86400.0 }

// DegreesPerDay returns the rate in deg/day.
func (r Rate) DegreesPerDay() float64 { return float64(r) * rad2deg }

// RateFromRadiansPerSecond tags a rad/s value as a per-day Rate.
func RateFromRadiansPerSecond(v float64) Rate { return Rate(v * 86400.0) }
