// Package propagation steps an element set forward in time with SGP4.
//
// The stepping engine is github.com/joshuaferrara/go-satellite. It is fed
// the encoded lines of a tle.TLE together with the TLE's own gravity
// profile, so the propagated orbit and the TLE's derived quantities are
// computed against the same constants.
package propagation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turkmvc/satmad/internal/satrec"
	"github.com/turkmvc/satmad/internal/tle"
	"github.com/turkmvc/satmad/internal/transform"
)

// ErrPropagationFailed is matched by every initialisation or stepping failure.
var ErrPropagationFailed = errors.New("sgp4 propagation failed")

// Propagate takes Satellite by value, so SGP4 error codes raised while
// stepping are not visible. Failures are detected from the output instead:
// NaN/Inf components or a position magnitude no Earth orbit can have.
const (
	minRadiusKm = 6200.0
	maxRadiusKm = 50000.0
)

// State is the propagated state at one instant.
type State struct {
	At   time.Time
	TEME transform.PositionTEME // km, km/s
	ECEF transform.PositionECEF // m, m/s
}

// SGP4Propagator propagates a single element set.
type SGP4Propagator struct {
	sat    satellite.Satellite
	satNum int
}

// NewSGP4Propagator initialises SGP4 from t. The encoded lines are checked
// before go-satellite sees them, since it exits the process on a field it
// cannot parse.
func NewSGP4Propagator(t *tle.TLE) (*SGP4Propagator, error) {
	l1, l2 := t.Lines()
	if err := validateLines(l1, l2); err != nil {
		return nil, fmt.Errorf("%w: invalid lines for %05d: %v", ErrPropagationFailed, t.SatNumber(), err)
	}

	sat := satellite.TLEToSat(l1, l2, t.Profile().SatelliteGravity())
	if sat.Error != 0 {
		return nil, fmt.Errorf("%w: init for %05d: code=%d %s", ErrPropagationFailed, t.SatNumber(), sat.Error, sat.ErrorStr)
	}
	return &SGP4Propagator{sat: sat, satNum: t.SatNumber()}, nil
}

// lineField is a column range go-satellite parses as a float after
// removing at most two blanks.
type lineField struct {
	line       int
	name       string
	start, end int
}

var goSatelliteFields = []lineField{
	{1, "epoch day", 20, 32},
	{1, "mean motion first derivative", 33, 43},
	{2, "inclination", 8, 16},
	{2, "raan", 17, 25},
	{2, "argument of perigee", 34, 42},
	{2, "mean anomaly", 43, 51},
	{2, "mean motion", 52, 63},
}

// goSatelliteExpFields are read as mantissa digits plus a signed exponent digit.
var goSatelliteExpFields = []lineField{
	{1, "mean motion second derivative", 44, 52},
	{1, "bstar", 53, 61},
}

func notFixedPoint(r rune) bool {
	return !strings.ContainsRune("0123456789.+- ", r)
}

// validateLines performs the format checks go-satellite itself does not
// survive: layout, and every float column parseable the way it reads it.
func validateLines(line1, line2 string) error {
	if err := satrec.CheckLayout(1, line1); err != nil {
		return err
	}
	if err := satrec.CheckLayout(2, line2); err != nil {
		return err
	}
	lines := [3]string{1: line1, 2: line2}
	for _, f := range goSatelliteFields {
		raw := lines[f.line][f.start:f.end]
		if n := strings.Count(raw, " "); n > 2 {
			return fmt.Errorf("line %d %s: %d blanks in %q", f.line, f.name, n, raw)
		}
		if strings.ContainsFunc(raw, notFixedPoint) {
			return fmt.Errorf("line %d %s: %q is not fixed-point", f.line, f.name, raw)
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(raw, " ", ""), 64); err != nil {
			return fmt.Errorf("line %d %s: %w", f.line, f.name, err)
		}
	}
	for _, f := range goSatelliteExpFields {
		raw := lines[f.line][f.start:f.end]
		mant := strings.ReplaceAll(raw[1:6], " ", "0")
		if strings.Trim(mant, "0123456789") != "" || !strings.ContainsRune(" +-", rune(raw[0])) ||
			!strings.ContainsRune("+-", rune(raw[6])) || raw[7] < '0' || raw[7] > '9' {
			return fmt.Errorf("line %d %s: %q is not in exponent notation", f.line, f.name, raw)
		}
	}
	return nil
}

// Propagate computes the TEME position and velocity at the given time,
// truncated to the whole second.
func (p *SGP4Propagator) Propagate(at time.Time) (transform.PositionTEME, error) {
	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	pos, vel := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)

	for _, c := range []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return transform.PositionTEME{}, fmt.Errorf("%w: %05d at %s: output is NaN/Inf", ErrPropagationFailed, p.satNum, at.Format(time.RFC3339))
		}
	}

	teme := transform.PositionTEME{X: pos.X, Y: pos.Y, Z: pos.Z, VX: vel.X, VY: vel.Y, VZ: vel.Z}
	if mag := r3.Norm(teme.Position()); mag < minRadiusKm || mag > maxRadiusKm {
		return transform.PositionTEME{}, fmt.Errorf("%w: %05d at %s: unreasonable position magnitude %.1f km", ErrPropagationFailed, p.satNum, at.Format(time.RFC3339), mag)
	}

	return teme, nil
}

// PropagateState propagates to at and adds the ECEF rotation of the result.
func (p *SGP4Propagator) PropagateState(at time.Time) (State, error) {
	at = at.UTC().Truncate(time.Second)
	teme, err := p.Propagate(at)
	if err != nil {
		return State{}, err
	}
	return State{At: at, TEME: teme, ECEF: transform.TEMEToECEF(teme, at)}, nil
}
