package tle

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/transform"
)

// ErrValidation is matched by every out-of-range value rejected by a
// constructor or setter.
var ErrValidation = errors.New("invalid element value")

// ValidationError names the field, the rejected value and the accepted range.
type ValidationError struct {
	Field string
	Value any
	Range string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v is outside %s", e.Field, e.Value, e.Range)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NoName is the name reported for an element set built without one.
const NoName = "NO NAME"

// MaxMeanMotion is the largest accepted mean motion in rev/day.
const MaxMeanMotion = 17.0

const secondsPerDay = 86400.0

// Field names as reported in ValidationError.Field.
const (
	FieldInclination    = "inclination"
	FieldRAAN           = "raan"
	FieldEccentricity   = "eccentricity"
	FieldArgPerigee     = "arg_perigee"
	FieldMeanAnomaly    = "mean_anomaly"
	FieldMeanMotion     = "mean_motion"
	FieldNDot           = "n_dot"
	FieldClassification = "classification"
	FieldRevNr          = "rev_nr"
	FieldElNr           = "el_nr"
	FieldIntlDesignator = "intl_designator"
	FieldSatNumber      = "sat_number"
	FieldEpoch          = "epoch"
)

// The check functions below are the only place each field's range is
// enforced. Constructors and setters both go through them. Comparisons are
// written so that NaN fails.

func checkInclination(in angle.Input) (float64, error) {
	r := angle.ToRadians(in)
	if !(r >= 0 && r < math.Pi) {
		return 0, &ValidationError{Field: FieldInclination, Value: r, Range: "[0, π) rad"}
	}
	return r, nil
}

// checkFullTurn wraps in into [0, 2π) and then range checks the result.
func checkFullTurn(field string, in angle.Input) (float64, error) {
	r := angle.WrapTwoPi(in)
	if !(r >= 0 && r < angle.TwoPi) {
		return 0, &ValidationError{Field: field, Value: angle.ToRadians(in), Range: "[0, 2π) rad"}
	}
	return r, nil
}

// checkEpoch rejects instants the two-digit epoch year cannot represent.
func checkEpoch(t time.Time) error {
	if y := t.UTC().Year(); y < transform.FirstEpochYear || y > transform.LastEpochYear {
		return &ValidationError{Field: FieldEpoch, Value: t.UTC().Format(time.RFC3339),
			Range: fmt.Sprintf("years [%d, %d]", transform.FirstEpochYear, transform.LastEpochYear)}
	}
	return nil
}

func checkEccentricity(e float64) error {
	if !(e >= 0 && e < 1) {
		return &ValidationError{Field: FieldEccentricity, Value: e, Range: "[0, 1)"}
	}
	return nil
}

// checkMeanMotion takes rad/s and returns the stored rad/min value.
func checkMeanMotion(n float64) (float64, error) {
	revPerDay := n * secondsPerDay / angle.TwoPi
	if !(revPerDay > 0 && revPerDay <= MaxMeanMotion) {
		return 0, &ValidationError{Field: FieldMeanMotion, Value: n, Range: "(0, 17] rev/day"}
	}
	return n * 60, nil
}

func checkNDot(v float64) error {
	if !(v > -1 && v < 1) {
		return &ValidationError{Field: FieldNDot, Value: v, Range: "(-1, 1)"}
	}
	return nil
}

func checkClassification(c string) error {
	switch c {
	case "U", "C", "S":
		return nil
	}
	return &ValidationError{Field: FieldClassification, Value: c, Range: "{U, C, S}"}
}

func checkRevNr(n int) error {
	if n <= 0 || n >= 100000 {
		return &ValidationError{Field: FieldRevNr, Value: n, Range: "(0, 100000)"}
	}
	return nil
}

func checkElNr(n int) error {
	if n < 0 || n >= 10000 {
		return &ValidationError{Field: FieldElNr, Value: n, Range: "[0, 10000)"}
	}
	return nil
}

func checkIntlDesignator(s string) error {
	if len(s) > 8 {
		return &ValidationError{Field: FieldIntlDesignator, Value: s, Range: "at most 8 characters"}
	}
	return nil
}

func checkSatNumber(n int) error {
	if n < 0 || n >= 100000 {
		return &ValidationError{Field: FieldSatNumber, Value: n, Range: "[0, 100000)"}
	}
	return nil
}

func normalizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return NoName
	}
	return name
}
