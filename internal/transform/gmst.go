package transform

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00 TT).
const j2000 = 2451545.0

// jdUnixEpoch is the Julian Date of 1970-01-01T00:00:00 UTC.
const jdUnixEpoch = 2440587.5

// OmegaEarth is Earth's rotation rate in rad/s (IAU value).
const OmegaEarth = 7.292115146706979e-5

// SiderealDay is the length of the mean sidereal day in seconds.
const SiderealDay = 86164.09053083288

const secondsPerDay = 86400.0

// JulianDate converts a time.Time (UTC) to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JulianDate(t time.Time) float64 {
	jd1, jd2 := JulianDatePair(t)
	return jd1 + jd2
}

// JulianDatePair splits the Julian Date of t into the Julian Date of the
// preceding UTC midnight (always ending in .5) and the fraction of the day
// elapsed since then. Keeping the parts apart preserves sub-millisecond
// precision that a single float64 Julian Date loses.
func JulianDatePair(t time.Time) (jd1, jd2 float64) {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Adjust year/month for Jan/Feb (treat as months 13/14 of previous year).
	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd1 = math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5

	h, min, s := t.Clock()
	secs := float64(h*3600+min*60+s) + float64(t.Nanosecond())/1e9
	jd2 = secs / secondsPerDay

	return jd1, jd2
}

// TimeFromJulianDate builds the UTC instant for a two-part Julian Date.
// The parts may be split anywhere; the sum is what counts. The result is
// rounded to the nearest microsecond.
func TimeFromJulianDate(jd1, jd2 float64) time.Time {
	whole := math.Floor(jd1 - jdUnixEpoch)
	frac := (jd1 - jdUnixEpoch - whole) + jd2

	days := int64(whole)
	extra := math.Floor(frac)
	days += int64(extra)
	frac -= extra

	usec := int64(math.Round(frac * secondsPerDay * 1e6))
	return time.Unix(days*86400, 0).UTC().Add(time.Duration(usec) * time.Microsecond)
}

// GMST calculates Greenwich Mean Sidereal Time in radians for a given UTC time.
// Uses the IAU-82 model as described in Vallado "Fundamentals of Astrodynamics".
//
// Formula (Vallado Eq 3-47):
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries of UT1 from J2000.0, result is in seconds of time.
// UT1 is approximated by UTC.
func GMST(t time.Time) float64 {
	jd1, jd2 := JulianDatePair(t)
	tUT1 := ((jd1 - j2000) + jd2) / 36525.0

	// GMST in seconds of time.
	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	// Normalize to [0, 86400) seconds, then convert to radians.
	gmstSec = math.Mod(gmstSec, secondsPerDay)
	if gmstSec < 0 {
		gmstSec += secondsPerDay
	}

	return gmstSec / secondsPerDay * 2.0 * math.Pi
}

// LMST returns the local mean sidereal time in radians, in [0, 2π), at an
// east-positive longitude given in radians.
func LMST(t time.Time, longitude float64) float64 {
	lmst := math.Mod(GMST(t)+longitude, 2*math.Pi)
	if lmst < 0 {
		lmst += 2 * math.Pi
	}
	return lmst
}
