// Package gravity holds the gravitational constant profiles that element
// sets are defined against, and the two-body and J2 secular formulas that
// depend on them.
//
// A Profile is an immutable value. Each element set carries the profile it
// was built with, so several profiles can coexist in one process.
package gravity

import (
	"errors"
	"fmt"
	"math"
	"strings"

	satellite "github.com/joshuaferrara/go-satellite"
)

// ErrUnknownProfile is returned by Lookup for an unrecognised profile name.
var ErrUnknownProfile = errors.New("unknown gravity profile")

// Profile is a set of Earth gravity constants.
type Profile struct {
	Name     string
	Mu       float64 // km³/s²
	RadiusKm float64 // mean equatorial radius, km
	J2       float64
}

// Constant sets used by SGP4. WGS72 is what distributed element sets are
// generated against.
var (
	WGS72Old = Profile{Name: "wgs72old", Mu: 398600.79964, RadiusKm: 6378.135, J2: 0.001082616}
	WGS72    = Profile{Name: "wgs72", Mu: 398600.8, RadiusKm: 6378.135, J2: 0.001082616}
	WGS84    = Profile{Name: "wgs84", Mu: 398600.5, RadiusKm: 6378.137, J2: 0.00108262998905}
)

// Default is the profile element sets are built with when none is given.
var Default = WGS72

// Lookup returns the predefined profile with the given name (case-insensitive).
func Lookup(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case WGS72.Name:
		return WGS72, nil
	case WGS72Old.Name:
		return WGS72Old, nil
	case WGS84.Name:
		return WGS84, nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// SatelliteGravity maps the profile to the go-satellite constant set name.
func (p Profile) SatelliteGravity() satellite.Gravity {
	switch p.Name {
	case WGS84.Name:
		return satellite.GravityWGS84
	case WGS72Old.Name:
		return satellite.Gravity(WGS72Old.Name)
	default:
		return satellite.GravityWGS72
	}
}

// SemiMajorAxisKm returns the two-body semi-major axis in km for a mean
// motion n in rad/s.
func (p Profile) SemiMajorAxisKm(n float64) float64 {
	return math.Cbrt(p.Mu / (n * n))
}

// semiLatusRectumKm returns p = a(1-e²) in km.
func (p Profile) semiLatusRectumKm(n, e float64) float64 {
	return p.SemiMajorAxisKm(n) * (1 - e*e)
}

// NodeRate returns the secular J2 drift of the ascending node in rad/s for
// mean motion n (rad/s), eccentricity e and inclination i (rad).
func (p Profile) NodeRate(n, e, i float64) float64 {
	slr := p.semiLatusRectumKm(n, e)
	re := p.RadiusKm
	return -3 * n * re * re * p.J2 / (2 * slr * slr) * math.Cos(i)
}

// ArgPerigeeRate returns the secular J2 drift of the argument of perigee in
// rad/s for mean motion n (rad/s), eccentricity e and inclination i (rad).
func (p Profile) ArgPerigeeRate(n, e, i float64) float64 {
	slr := p.semiLatusRectumKm(n, e)
	re := p.RadiusKm
	sinI := math.Sin(i)
	return 3 * n * re * re * p.J2 / (4 * slr * slr) * (4 - 5*sinI*sinI)
}
