// Package tle models a two-line element set: the mean orbital elements of
// one Earth-orbiting object at an epoch, in the form an SGP4 propagator
// takes as its initial condition.
//
// A TLE is built once, by New, FromLines or NewGeo, and afterwards changed
// only through its setters. Every setter validates before writing, so a
// rejected value leaves the record as it was. A TLE carries no lock;
// callers sharing one across goroutines must serialise writes.
package tle

import (
	"time"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/satrec"
	"github.com/turkmvc/satmad/internal/transform"
)

// Metadata defaults for element sets built from raw elements.
const (
	DefaultIntlDesignator = "12345A"
	DefaultSatNumber      = 99999
	DefaultClassification = "U"
	DefaultRevNr          = 1
	DefaultElNr           = 1
)

// GeoEccentricity is the eccentricity given to geostationary element sets.
// It is kept off zero, where the element set is degenerate.
const GeoEccentricity = 1e-9

// TLE is a validated two-line element set.
type TLE struct {
	name  string
	epoch time.Time
	rec   satrec.Satrec
}

// Elements are the raw mean elements accepted by New.
type Elements struct {
	Epoch        time.Time
	Inclination  angle.Input // [0, π)
	RAAN         angle.Input // wrapped into [0, 2π)
	Eccentricity float64     // [0, 1)
	ArgPerigee   angle.Input // wrapped into [0, 2π)
	MeanAnomaly  angle.Input // wrapped into [0, 2π)
	MeanMotion   float64     // rad/s, at most 17 rev/day
	BStar        float64     // 1/earth radii
	NDot         float64     // rev/day², (-1, 1)
}

type options struct {
	name           string
	intlDesignator string
	satNumber      int
	classification string
	revNr          int
	elNr           int
	nDotDot        float64
	profile        gravity.Profile
}

func defaultOptions() options {
	return options{
		intlDesignator: DefaultIntlDesignator,
		satNumber:      DefaultSatNumber,
		classification: DefaultClassification,
		revNr:          DefaultRevNr,
		elNr:           DefaultElNr,
		profile:        gravity.Default,
	}
}

// Option sets optional fields at construction.
type Option func(*options)

// WithName sets the display name. A blank name becomes NoName.
func WithName(name string) Option { return func(o *options) { o.name = name } }

// WithIntlDesignator sets the international designator (at most 8 characters).
func WithIntlDesignator(s string) Option { return func(o *options) { o.intlDesignator = s } }

// WithSatNumber sets the catalog number.
func WithSatNumber(n int) Option { return func(o *options) { o.satNumber = n } }

// WithClassification sets the classification, one of U, C or S.
func WithClassification(c string) Option { return func(o *options) { o.classification = c } }

// WithRevNr sets the revolution number at epoch.
func WithRevNr(n int) Option { return func(o *options) { o.revNr = n } }

// WithElNr sets the element set number.
func WithElNr(n int) Option { return func(o *options) { o.elNr = n } }

// WithNDotDot sets the second derivative of mean motion in rev/day³.
func WithNDotDot(v float64) Option { return func(o *options) { o.nDotDot = v } }

// WithProfile sets the gravity profile the elements are defined against.
func WithProfile(p gravity.Profile) Option { return func(o *options) { o.profile = p } }

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds an element set from raw elements. Inclination is checked
// before anything else; the first invalid field aborts construction and no
// TLE is returned.
func New(el Elements, opts ...Option) (*TLE, error) {
	incl, err := checkInclination(el.Inclination)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	raan, err := checkFullTurn(FieldRAAN, el.RAAN)
	if err != nil {
		return nil, err
	}
	argp, err := checkFullTurn(FieldArgPerigee, el.ArgPerigee)
	if err != nil {
		return nil, err
	}
	mo, err := checkFullTurn(FieldMeanAnomaly, el.MeanAnomaly)
	if err != nil {
		return nil, err
	}
	if err := checkEccentricity(el.Eccentricity); err != nil {
		return nil, err
	}
	n, err := checkMeanMotion(el.MeanMotion)
	if err != nil {
		return nil, err
	}
	if err := checkNDot(el.NDot); err != nil {
		return nil, err
	}
	if err := checkEpoch(el.Epoch); err != nil {
		return nil, err
	}
	if err := checkMetadata(o); err != nil {
		return nil, err
	}

	t := &TLE{
		name:  normalizeName(o.name),
		epoch: el.Epoch.UTC(),
	}
	t.rec.Init(o.profile, satrec.OpsModeImproved, satrec.Elements{
		SatNum:       o.satNumber,
		Epoch:        t.epoch,
		BStar:        el.BStar,
		NDot:         el.NDot,
		NDDot:        o.nDotDot,
		Eccentricity: el.Eccentricity,
		ArgPerigee:   argp,
		Inclination:  incl,
		MeanAnomaly:  mo,
		MeanMotion:   n,
		RAAN:         raan,
	})
	t.rec.Classification = o.classification
	t.rec.IntlDesg = o.intlDesignator
	t.rec.EphType = satrec.EphTypeDistributed
	t.rec.RevNum = o.revNr
	t.rec.ElNum = o.elNr

	return t, nil
}

func checkMetadata(o options) error {
	if err := checkSatNumber(o.satNumber); err != nil {
		return err
	}
	if err := checkIntlDesignator(o.intlDesignator); err != nil {
		return err
	}
	if err := checkClassification(o.classification); err != nil {
		return err
	}
	if err := checkRevNr(o.revNr); err != nil {
		return err
	}
	return checkElNr(o.elNr)
}

// FromLines decodes an element set from its two fixed-column lines. The
// lines are trusted once they decode: field ranges are not re-checked, and
// decoding errors are returned unchanged. Only WithName and WithProfile
// apply; the lines carry every other field.
func FromLines(line1, line2 string, opts ...Option) (*TLE, error) {
	o := applyOptions(opts)

	rec, err := satrec.Decode(line1, line2, o.profile)
	if err != nil {
		return nil, err
	}

	return &TLE{
		name:  normalizeName(o.name),
		epoch: rec.Epoch(),
		rec:   *rec,
	}, nil
}

// NewGeo builds a geostationary element set over longitude (east positive)
// at epoch: one revolution per sidereal day, the node at the local mean
// sidereal time, zero inclination and a near-zero eccentricity.
func NewGeo(epoch time.Time, longitude angle.Input, opts ...Option) (*TLE, error) {
	lmst := transform.LMST(epoch, angle.ToRadians(longitude))

	return New(Elements{
		Epoch:        epoch,
		Inclination:  angle.Raw(0),
		RAAN:         angle.Raw(lmst),
		Eccentricity: GeoEccentricity,
		ArgPerigee:   angle.Raw(0),
		MeanAnomaly:  angle.Raw(0),
		MeanMotion:   angle.TwoPi / transform.SiderealDay,
	}, opts...)
}
