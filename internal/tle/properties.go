package tle

import (
	"time"

	"gonum.org/v1/gonum/unit"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
)

// Epoch returns the reference instant of the elements, in UTC.
func (t *TLE) Epoch() time.Time { return t.epoch }

// Profile returns the gravity profile the elements are defined against.
func (t *TLE) Profile() gravity.Profile { return t.rec.Gravity }

// Name returns the display name; never empty.
func (t *TLE) Name() string { return t.name }

// SetName sets the display name. A blank name becomes NoName.
func (t *TLE) SetName(name string) { t.name = normalizeName(name) }

// Inclination returns the inclination in [0, π).
func (t *TLE) Inclination() unit.Angle { return unit.Angle(t.rec.Inclo) }

// SetInclination sets the inclination. Values outside [0, π) are rejected.
func (t *TLE) SetInclination(in angle.Input) error {
	r, err := checkInclination(in)
	if err != nil {
		return err
	}
	t.rec.Inclo = r
	return nil
}

// RAAN returns the right ascension of the ascending node in [0, 2π).
func (t *TLE) RAAN() unit.Angle { return unit.Angle(t.rec.Nodeo) }

// SetRAAN wraps in into [0, 2π) and sets it as the node.
func (t *TLE) SetRAAN(in angle.Input) error {
	r, err := checkFullTurn(FieldRAAN, in)
	if err != nil {
		return err
	}
	t.rec.Nodeo = r
	return nil
}

// ArgPerigee returns the argument of perigee in [0, 2π).
func (t *TLE) ArgPerigee() unit.Angle { return unit.Angle(t.rec.Argpo) }

// SetArgPerigee wraps in into [0, 2π) and sets it as the argument of perigee.
func (t *TLE) SetArgPerigee(in angle.Input) error {
	r, err := checkFullTurn(FieldArgPerigee, in)
	if err != nil {
		return err
	}
	t.rec.Argpo = r
	return nil
}

// MeanAnomaly returns the mean anomaly at epoch in [0, 2π).
func (t *TLE) MeanAnomaly() unit.Angle { return unit.Angle(t.rec.Mo) }

// SetMeanAnomaly wraps in into [0, 2π) and sets it as the mean anomaly.
func (t *TLE) SetMeanAnomaly(in angle.Input) error {
	r, err := checkFullTurn(FieldMeanAnomaly, in)
	if err != nil {
		return err
	}
	t.rec.Mo = r
	return nil
}

// Eccentricity returns the eccentricity, in [0, 1).
func (t *TLE) Eccentricity() float64 { return t.rec.Ecco }

// SetEccentricity sets the eccentricity. The value must lie in [0, 1).
func (t *TLE) SetEccentricity(e float64) error {
	if err := checkEccentricity(e); err != nil {
		return err
	}
	t.rec.Ecco = e
	return nil
}

// MeanMotion returns the mean motion in rad/s. The element container keeps
// it in rad/min; the two differ by a factor of 60.
func (t *TLE) MeanMotion() float64 { return t.rec.NoKozai / 60 }

// SetMeanMotion sets the mean motion from a value in rad/s. The value must
// lie in (0, 17] rev/day.
func (t *TLE) SetMeanMotion(n float64) error {
	perMin, err := checkMeanMotion(n)
	if err != nil {
		return err
	}
	t.rec.NoKozai = perMin
	return nil
}

// MeanMotionRevPerDay returns the mean motion in rev/day, as written on line 2.
func (t *TLE) MeanMotionRevPerDay() float64 { return t.rec.MeanMotionRevPerDay() }

// NDot returns the first derivative of mean motion in rev/day².
func (t *TLE) NDot() float64 { return t.rec.NDot }

// SetNDot sets the first derivative of mean motion. |v| must be below 1.
func (t *TLE) SetNDot(v float64) error {
	if err := checkNDot(v); err != nil {
		return err
	}
	t.rec.NDot = v
	return nil
}

// NDotDot returns the second derivative of mean motion in rev/day³.
func (t *TLE) NDotDot() float64 { return t.rec.NDDot }

// BStar returns the drag term in 1/earth radii.
func (t *TLE) BStar() float64 { return t.rec.BStar }

// SatNumber returns the catalog number, in [0, 100000).
func (t *TLE) SatNumber() int { return t.rec.SatNum }

// Classification returns U, C or S.
func (t *TLE) Classification() string { return t.rec.Classification }

// SetClassification sets the classification; only U, C and S are accepted.
func (t *TLE) SetClassification(c string) error {
	if err := checkClassification(c); err != nil {
		return err
	}
	t.rec.Classification = c
	return nil
}

// IntlDesignator returns the international designator, at most 8 characters.
func (t *TLE) IntlDesignator() string { return t.rec.IntlDesg }

// SetIntlDesignator sets the international designator, at most 8 characters.
func (t *TLE) SetIntlDesignator(s string) error {
	if err := checkIntlDesignator(s); err != nil {
		return err
	}
	t.rec.IntlDesg = s
	return nil
}

// RevNr returns the revolution number at epoch.
func (t *TLE) RevNr() int { return t.rec.RevNum }

// SetRevNr sets the revolution number. The value must lie in (0, 100000).
func (t *TLE) SetRevNr(n int) error {
	if err := checkRevNr(n); err != nil {
		return err
	}
	t.rec.RevNum = n
	return nil
}

// ElNr returns the element set number.
func (t *TLE) ElNr() int { return t.rec.ElNum }

// SetElNr sets the element set number. The value must lie in [0, 10000).
func (t *TLE) SetElNr(n int) error {
	if err := checkElNr(n); err != nil {
		return err
	}
	t.rec.ElNum = n
	return nil
}
