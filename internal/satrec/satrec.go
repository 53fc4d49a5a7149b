// Package satrec is the element container handed to an SGP4 propagator: the
// mean elements of one element set in propagator-native units, with the
// catalog metadata needed to write it back out as two fixed-column lines.
//
// Fields are plain values. The container does not validate them; that is
// the job of the owner that populates it.
package satrec

import (
	"math"
	"time"

	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/transform"
)

// OpsModeImproved is the SGP4 operating mode used for all element sets.
const OpsModeImproved = 'i'

// EphTypeDistributed is the ephemeris type carried by distributed element sets.
const EphTypeDistributed = 0

// minutesPerDay converts rev/day to rad/min via 2π/minutesPerDay.
const minutesPerDay = 1440.0

// Satrec holds one element set.
type Satrec struct {
	SatNum         int
	Classification string
	IntlDesg       string
	EphType        int
	ElNum          int
	RevNum         int

	// Epoch as two-digit year and 1-based fractional day of year, and the
	// same instant as a two-part Julian Date.
	EpochYr     int
	EpochDays   float64
	JDSatEpoch  float64
	JDSatEpochF float64

	BStar float64 // 1/earth radii
	NDot  float64 // rev/day²
	NDDot float64 // rev/day³

	Inclo   float64 // rad
	Nodeo   float64 // rad
	Ecco    float64
	Argpo   float64 // rad
	Mo      float64 // rad
	NoKozai float64 // rad/min

	Gravity gravity.Profile
	OpsMode byte
}

// Elements are the values Init loads into a container.
type Elements struct {
	SatNum       int
	Epoch        time.Time
	BStar        float64
	NDot         float64
	NDDot        float64
	Eccentricity float64
	ArgPerigee   float64 // rad
	Inclination  float64 // rad
	MeanAnomaly  float64 // rad
	MeanMotion   float64 // rad/min
	RAAN         float64 // rad
}

// Init loads raw elements with the constant profile and operating mode the
// propagator is to use.
func (s *Satrec) Init(p gravity.Profile, opsMode byte, el Elements) {
	s.Gravity = p
	s.OpsMode = opsMode
	s.SatNum = el.SatNum
	s.SetEpoch(el.Epoch)
	s.BStar = el.BStar
	s.NDot = el.NDot
	s.NDDot = el.NDDot
	s.Ecco = el.Eccentricity
	s.Argpo = el.ArgPerigee
	s.Inclo = el.Inclination
	s.Mo = el.MeanAnomaly
	s.NoKozai = el.MeanMotion
	s.Nodeo = el.RAAN
}

// SetEpoch derives the line 1 epoch encoding and the Julian Date pair from t.
func (s *Satrec) SetEpoch(t time.Time) {
	s.EpochYr, s.EpochDays = transform.YearDay(t)
	s.JDSatEpoch, s.JDSatEpochF = transform.JulianDatePair(t)
}

// Epoch returns the epoch rebuilt from the Julian Date pair.
func (s *Satrec) Epoch() time.Time {
	return transform.TimeFromJulianDate(s.JDSatEpoch, s.JDSatEpochF)
}

// MeanMotionRevPerDay returns NoKozai in rev/day.
func (s *Satrec) MeanMotionRevPerDay() float64 {
	return s.NoKozai * minutesPerDay / (2 * math.Pi)
}
