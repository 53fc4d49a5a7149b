package tle

import (
	"time"

	"gonum.org/v1/gonum/unit"

	"github.com/turkmvc/satmad/internal/angle"
)

// Period returns the time taken for one revolution at the current mean
// motion.
func (t *TLE) Period() time.Duration {
	sec := angle.TwoPi / t.MeanMotion()
	return time.Duration(sec * float64(time.Second))
}

// SemiMajorAxis returns the two-body semi-major axis under the element
// set's gravity profile.
func (t *TLE) SemiMajorAxis() unit.Length {
	km := t.Profile().SemiMajorAxisKm(t.MeanMotion())
	return unit.Length(km * 1000)
}

// NodeRotationRate returns the secular J2 drift of the ascending node.
// It is negative for prograde orbits and zero for polar ones.
func (t *TLE) NodeRotationRate() angle.Rate {
	r := t.Profile().NodeRate(t.MeanMotion(), t.rec.Ecco, t.rec.Inclo)
	return angle.RateFromRadiansPerSecond(r)
}

// ArgPerigeeRotationRate returns the secular J2 drift of the argument of
// perigee. It vanishes at the critical inclination of about 63.4°.
func (t *TLE) ArgPerigeeRotationRate() angle.Rate {
	r := t.Profile().ArgPerigeeRate(t.MeanMotion(), t.rec.Ecco, t.rec.Inclo)
	return angle.RateFromRadiansPerSecond(r)
}
