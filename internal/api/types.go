package api

import (
	"time"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/propagation"
	"github.com/turkmvc/satmad/internal/tle"
)

// TextRequest carries an element set in two- or three-line form.
type TextRequest struct {
	Text    string `json:"text"`
	Name    string `json:"name,omitempty"`
	Gravity string `json:"gravity,omitempty"`
}

// Metadata is the optional catalog part of a build request.
type Metadata struct {
	Name           string  `json:"name,omitempty"`
	IntlDesignator *string `json:"intl_designator,omitempty"`
	SatNumber      *int    `json:"sat_number,omitempty"`
	Classification *string `json:"classification,omitempty"`
	RevNr          *int    `json:"rev_nr,omitempty"`
	ElNr           *int    `json:"el_nr,omitempty"`
	Gravity        string  `json:"gravity,omitempty"`
}

func (m Metadata) options(p gravity.Profile) []tle.Option {
	opts := []tle.Option{tle.WithName(m.Name), tle.WithProfile(p)}
	if m.IntlDesignator != nil {
		opts = append(opts, tle.WithIntlDesignator(*m.IntlDesignator))
	}
	if m.SatNumber != nil {
		opts = append(opts, tle.WithSatNumber(*m.SatNumber))
	}
	if m.Classification != nil {
		opts = append(opts, tle.WithClassification(*m.Classification))
	}
	if m.RevNr != nil {
		opts = append(opts, tle.WithRevNr(*m.RevNr))
	}
	if m.ElNr != nil {
		opts = append(opts, tle.WithElNr(*m.ElNr))
	}
	return opts
}

// ElementsRequest carries raw mean elements. Angles are in degrees and mean
// motion in rev/day, as they appear in the text form.
type ElementsRequest struct {
	Metadata
	Epoch               time.Time `json:"epoch"`
	InclinationDeg      float64   `json:"inclination_deg"`
	RAANDeg             float64   `json:"raan_deg"`
	Eccentricity        float64   `json:"eccentricity"`
	ArgPerigeeDeg       float64   `json:"arg_perigee_deg"`
	MeanAnomalyDeg      float64   `json:"mean_anomaly_deg"`
	MeanMotionRevPerDay float64   `json:"mean_motion_rev_per_day"`
	BStar               float64   `json:"bstar"`
	NDot                float64   `json:"n_dot"`
	NDotDot             float64   `json:"n_dotdot"`
}

func (r ElementsRequest) elements() tle.Elements {
	return tle.Elements{
		Epoch:        r.Epoch,
		Inclination:  angle.Deg(r.InclinationDeg),
		RAAN:         angle.Deg(r.RAANDeg),
		Eccentricity: r.Eccentricity,
		ArgPerigee:   angle.Deg(r.ArgPerigeeDeg),
		MeanAnomaly:  angle.Deg(r.MeanAnomalyDeg),
		MeanMotion:   r.MeanMotionRevPerDay * angle.TwoPi / 86400.0,
		BStar:        r.BStar,
		NDot:         r.NDot,
	}
}

// GeoRequest asks for a geostationary element set over a longitude.
type GeoRequest struct {
	Metadata
	Epoch        time.Time `json:"epoch"`
	LongitudeDeg float64   `json:"longitude_deg"`
}

// Derived holds the quantities computed from the elements.
type Derived struct {
	PeriodSeconds           float64 `json:"period_seconds"`
	PeriodMinutes           float64 `json:"period_minutes"`
	SemiMajorAxisKm         float64 `json:"semi_major_axis_km"`
	NodeRateDegPerDay       float64 `json:"node_rate_deg_per_day"`
	ArgPerigeeRateDegPerDay float64 `json:"arg_perigee_rate_deg_per_day"`
}

// TLEResponse is the JSON view of an element set.
type TLEResponse struct {
	Name                string    `json:"name"`
	SatNumber           int       `json:"sat_number"`
	Classification      string    `json:"classification"`
	IntlDesignator      string    `json:"intl_designator"`
	Epoch               time.Time `json:"epoch"`
	InclinationDeg      float64   `json:"inclination_deg"`
	RAANDeg             float64   `json:"raan_deg"`
	Eccentricity        float64   `json:"eccentricity"`
	ArgPerigeeDeg       float64   `json:"arg_perigee_deg"`
	MeanAnomalyDeg      float64   `json:"mean_anomaly_deg"`
	MeanMotionRevPerDay float64   `json:"mean_motion_rev_per_day"`
	BStar               float64   `json:"bstar"`
	NDot                float64   `json:"n_dot"`
	NDotDot             float64   `json:"n_dotdot"`
	RevNr               int       `json:"rev_nr"`
	ElNr                int       `json:"el_nr"`
	Gravity             string    `json:"gravity"`
	Line1               string    `json:"line1"`
	Line2               string    `json:"line2"`
	Text                string    `json:"text"`
	Derived             Derived   `json:"derived"`
}

func newTLEResponse(t *tle.TLE) TLEResponse {
	l1, l2 := t.Lines()
	return TLEResponse{
		Name:                t.Name(),
		SatNumber:           t.SatNumber(),
		Classification:      t.Classification(),
		IntlDesignator:      t.IntlDesignator(),
		Epoch:               t.Epoch(),
		InclinationDeg:      angle.ToDegrees(t.Inclination()),
		RAANDeg:             angle.ToDegrees(t.RAAN()),
		Eccentricity:        t.Eccentricity(),
		ArgPerigeeDeg:       angle.ToDegrees(t.ArgPerigee()),
		MeanAnomalyDeg:      angle.ToDegrees(t.MeanAnomaly()),
		MeanMotionRevPerDay: t.MeanMotionRevPerDay(),
		BStar:               t.BStar(),
		NDot:                t.NDot(),
		NDotDot:             t.NDotDot(),
		RevNr:               t.RevNr(),
		ElNr:                t.ElNr(),
		Gravity:             t.Profile().Name,
		Line1:               l1,
		Line2:               l2,
		Text:                t.String(),
		Derived: Derived{
			PeriodSeconds:           t.Period().Seconds(),
			PeriodMinutes:           t.Period().Minutes(),
			SemiMajorAxisKm:         float64(t.SemiMajorAxis()) / 1000,
			NodeRateDegPerDay:       t.NodeRotationRate().DegreesPerDay(),
			ArgPerigeeRateDegPerDay: t.ArgPerigeeRotationRate().DegreesPerDay(),
		},
	}
}

// StateResponse is a propagated state.
type StateResponse struct {
	SatNumber int        `json:"sat_number"`
	At        time.Time  `json:"at"`
	TEMEKm    [3]float64 `json:"teme_position_km"`
	TEMEKmS   [3]float64 `json:"teme_velocity_km_s"`
	ECEFM     [3]float64 `json:"ecef_position_m"`
	ECEFMS    [3]float64 `json:"ecef_velocity_m_s"`
}

func newStateResponse(satNum int, st propagation.State) StateResponse {
	return StateResponse{
		SatNumber: satNum,
		At:        st.At,
		TEMEKm:    [3]float64{st.TEME.X, st.TEME.Y, st.TEME.Z},
		TEMEKmS:   [3]float64{st.TEME.VX, st.TEME.VY, st.TEME.VZ},
		ECEFM:     [3]float64{st.ECEF.X, st.ECEF.Y, st.ECEF.Z},
		ECEFMS:    [3]float64{st.ECEF.VX, st.ECEF.VY, st.ECEF.VZ},
	}
}

// ProfileResponse describes a gravity profile.
type ProfileResponse struct {
	Name     string  `json:"name"`
	Mu       float64 `json:"mu_km3_s2"`
	RadiusKm float64 `json:"radius_km"`
	J2       float64 `json:"j2"`
	Default  bool    `json:"default"`
}

func newProfileResponse(p, def gravity.Profile) ProfileResponse {
	return ProfileResponse{Name: p.Name, Mu: p.Mu, RadiusKm: p.RadiusKm, J2: p.J2, Default: p == def}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
	Range string `json:"range,omitempty"`
}
