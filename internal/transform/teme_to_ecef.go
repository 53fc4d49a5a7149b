// Package transform carries the time system the element sets are expressed
// in (Julian dates, element-set epochs, sidereal time) and the TEME to ECEF
// rotation applied to propagated states.
//
// Method: Simplified Vallado-style rotation using GMST only (TEME → PEF ≈ ECEF).
// This ignores polar motion and equation of equinoxes, which introduces ~50m error
// at most.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3.
package transform

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// PositionTEME represents a satellite position and velocity in the TEME frame.
type PositionTEME struct {
	X, Y, Z    float64 // km
	VX, VY, VZ float64 // km/s
}

// Position returns the position vector in km.
func (p PositionTEME) Position() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// PositionECEF represents a satellite position and velocity in the ECEF frame.
type PositionECEF struct {
	X, Y, Z    float64 // meters
	VX, VY, VZ float64 // m/s
}

// Position returns the position vector in meters.
func (p PositionECEF) Position() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// TEMEToECEF transforms a TEME position/velocity to ECEF at the given UTC time.
// Input: TEME in km and km/s.
// Output: ECEF in meters and m/s.
func TEMEToECEF(teme PositionTEME, t time.Time) PositionECEF {
	return TEMEToECEFWithGMST(teme, GMST(t))
}

// TEMEToECEFWithGMST transforms TEME to ECEF using a precomputed GMST angle (radians).
//
// Position transform: r_ECEF = R3(θ) * r_TEME
// Velocity transform: v_ECEF = R3(θ) * v_TEME - ω × r_ECEF
func TEMEToECEFWithGMST(teme PositionTEME, gmst float64) PositionECEF {
	rot := func(v r3.Vec) r3.Vec {
		c, s := math.Cos(gmst), math.Sin(gmst)
		return r3.Vec{X: v.X*c + v.Y*s, Y: -v.X*s + v.Y*c, Z: v.Z}
	}

	r := rot(teme.Position())
	omega := r3.Vec{Z: OmegaEarth}
	v := r3.Sub(rot(r3.Vec{X: teme.VX, Y: teme.VY, Z: teme.VZ}), r3.Cross(omega, r))

	// km → m, km/s → m/s.
	r = r3.Scale(1000.0, r)
	v = r3.Scale(1000.0, v)

	return PositionECEF{X: r.X, Y: r.Y, Z: r.Z, VX: v.X, VY: v.Y, VZ: v.Z}
}

// ValidateECEF checks that an ECEF position is physically reasonable for an
// Earth-orbiting satellite: finite, and between 6200 km and 50000 km from
// the geocentre.
func ValidateECEF(pos PositionECEF) bool {
	for _, c := range []float64{pos.X, pos.Y, pos.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	const minRadius = 6200.0 * 1000.0
	const maxRadius = 50000.0 * 1000.0

	mag := r3.Norm(pos.Position())
	return mag >= minRadius && mag <= maxRadius
}
