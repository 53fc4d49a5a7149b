package tle

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/unit"

	"github.com/turkmvc/satmad/internal/angle"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/satrec"
	"github.com/turkmvc/satmad/internal/transform"
)

const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func revPerDay(v float64) float64 { return v * angle.TwoPi / secondsPerDay }

func deg(a unit.Angle) float64 { return angle.ToDegrees(a) }

func leoElements() Elements {
	return Elements{
		Epoch:        time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC),
		Inclination:  angle.Deg(53),
		RAAN:         angle.Deg(200),
		Eccentricity: 0.00015,
		ArgPerigee:   angle.Deg(90),
		MeanAnomaly:  angle.Deg(270),
		MeanMotion:   revPerDay(15.06),
		BStar:        0.1e-4,
		NDot:         0.00001,
	}
}

func mustNew(t *testing.T, el Elements, opts ...Option) *TLE {
	t.Helper()
	tl, err := New(el, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tl
}

func wantValidation(t *testing.T, err error, field string) {
	t.Helper()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a *ValidationError", err)
	}
	if ve.Field != field {
		t.Errorf("ValidationError.Field = %q, want %q", ve.Field, field)
	}
	if ve.Range == "" {
		t.Errorf("ValidationError for %s has no range", field)
	}
}

func TestNewDefaults(t *testing.T) {
	tl := mustNew(t, leoElements())

	if tl.Name() != NoName {
		t.Errorf("Name() = %q, want %q", tl.Name(), NoName)
	}
	if tl.SatNumber() != DefaultSatNumber || tl.IntlDesignator() != DefaultIntlDesignator {
		t.Errorf("catalog = %d/%q, want defaults", tl.SatNumber(), tl.IntlDesignator())
	}
	if tl.Classification() != "U" || tl.RevNr() != DefaultRevNr || tl.ElNr() != DefaultElNr {
		t.Errorf("metadata = %q/%d/%d, want defaults", tl.Classification(), tl.RevNr(), tl.ElNr())
	}
	if tl.Profile() != gravity.WGS72 {
		t.Errorf("Profile() = %s, want wgs72", tl.Profile().Name)
	}
	if tl.NDotDot() != 0 || tl.BStar() != 0.1e-4 || tl.NDot() != 0.00001 {
		t.Errorf("drag terms = %v/%v/%v", tl.NDotDot(), tl.BStar(), tl.NDot())
	}
	if !tl.Epoch().Equal(leoElements().Epoch) {
		t.Errorf("Epoch() = %v, want %v", tl.Epoch(), leoElements().Epoch)
	}
	if math.Abs(deg(tl.Inclination())-53) > 1e-12 {
		t.Errorf("Inclination() = %v°, want 53°", deg(tl.Inclination()))
	}
}

func TestNewOptions(t *testing.T) {
	tl := mustNew(t, leoElements(),
		WithName("STARLINK-1007"),
		WithIntlDesignator("19074A"),
		WithSatNumber(44713),
		WithClassification("S"),
		WithRevNr(12345),
		WithElNr(999),
		WithNDotDot(1.2e-6),
		WithProfile(gravity.WGS84),
	)

	if tl.Name() != "STARLINK-1007" || tl.IntlDesignator() != "19074A" || tl.SatNumber() != 44713 {
		t.Errorf("identity = %q/%q/%d", tl.Name(), tl.IntlDesignator(), tl.SatNumber())
	}
	if tl.Classification() != "S" || tl.RevNr() != 12345 || tl.ElNr() != 999 {
		t.Errorf("metadata = %q/%d/%d", tl.Classification(), tl.RevNr(), tl.ElNr())
	}
	if tl.NDotDot() != 1.2e-6 {
		t.Errorf("NDotDot() = %v, want 1.2e-6", tl.NDotDot())
	}
	if tl.Profile() != gravity.WGS84 {
		t.Errorf("Profile() = %s, want wgs84", tl.Profile().Name)
	}
}

func TestNewWrapsAngles(t *testing.T) {
	el := leoElements()
	el.RAAN = angle.Raw(-0.5)
	el.ArgPerigee = angle.Deg(370)
	el.MeanAnomaly = angle.Of(-math.Pi)

	tl := mustNew(t, el)

	if got, want := float64(tl.RAAN()), angle.TwoPi-0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("RAAN() = %v, want %v", got, want)
	}
	if got := deg(tl.ArgPerigee()); math.Abs(got-10) > 1e-9 {
		t.Errorf("ArgPerigee() = %v°, want 10°", got)
	}
	if got := float64(tl.MeanAnomaly()); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("MeanAnomaly() = %v, want π", got)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Elements)
		opts  []Option
		field string
	}{
		{"inclination π", func(e *Elements) { e.Inclination = angle.Raw(math.Pi) }, nil, FieldInclination},
		{"inclination negative", func(e *Elements) { e.Inclination = angle.Deg(-1) }, nil, FieldInclination},
		{"inclination NaN", func(e *Elements) { e.Inclination = angle.Raw(math.NaN()) }, nil, FieldInclination},
		{"raan two turns out", func(e *Elements) { e.RAAN = angle.Raw(2*angle.TwoPi + 0.1) }, nil, FieldRAAN},
		{"arg perigee two turns out", func(e *Elements) { e.ArgPerigee = angle.Deg(-400) }, nil, FieldArgPerigee},
		{"mean anomaly NaN", func(e *Elements) { e.MeanAnomaly = angle.Raw(math.NaN()) }, nil, FieldMeanAnomaly},
		{"eccentricity 1", func(e *Elements) { e.Eccentricity = 1 }, nil, FieldEccentricity},
		{"eccentricity negative", func(e *Elements) { e.Eccentricity = -1e-9 }, nil, FieldEccentricity},
		{"mean motion zero", func(e *Elements) { e.MeanMotion = 0 }, nil, FieldMeanMotion},
		{"mean motion too fast", func(e *Elements) { e.MeanMotion = revPerDay(17.01) }, nil, FieldMeanMotion},
		{"n dot 1", func(e *Elements) { e.NDot = 1 }, nil, FieldNDot},
		{"classification", nil, []Option{WithClassification("X")}, FieldClassification},
		{"classification lower case", nil, []Option{WithClassification("u")}, FieldClassification},
		{"rev nr zero", nil, []Option{WithRevNr(0)}, FieldRevNr},
		{"rev nr too large", nil, []Option{WithRevNr(100000)}, FieldRevNr},
		{"el nr negative", nil, []Option{WithElNr(-1)}, FieldElNr},
		{"el nr too large", nil, []Option{WithElNr(10000)}, FieldElNr},
		{"intl designator", nil, []Option{WithIntlDesignator("1998067ABC")}, FieldIntlDesignator},
		{"sat number", nil, []Option{WithSatNumber(100000)}, FieldSatNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := leoElements()
			if tt.edit != nil {
				tt.edit(&el)
			}
			tl, err := New(el, tt.opts...)
			if tl != nil {
				t.Errorf("New returned a TLE alongside error %v", err)
			}
			wantValidation(t, err, tt.field)
		})
	}
}

func TestNewChecksInclinationFirst(t *testing.T) {
	el := leoElements()
	el.Inclination = angle.Raw(4)
	el.Eccentricity = 2
	_, err := New(el, WithClassification("X"))
	wantValidation(t, err, FieldInclination)
}

func TestSetInclinationRejectsBoundary(t *testing.T) {
	tl := mustNew(t, leoElements())
	before := tl.Inclination()

	for _, in := range []angle.Input{angle.Raw(math.Pi), angle.Raw(-0.01), angle.Deg(181)} {
		err := tl.SetInclination(in)
		wantValidation(t, err, FieldInclination)
		if tl.Inclination() != before {
			t.Fatalf("Inclination() = %v after rejected %v, want %v", tl.Inclination(), in.Value(), before)
		}
	}

	if err := tl.SetInclination(angle.Deg(97.4)); err != nil {
		t.Fatalf("SetInclination(97.4°) failed: %v", err)
	}
	if got := deg(tl.Inclination()); math.Abs(got-97.4) > 1e-12 {
		t.Errorf("Inclination() = %v°, want 97.4°", got)
	}
}

func TestSettersLeaveValueOnError(t *testing.T) {
	tl := mustNew(t, leoElements())
	snapshot := tl.String()

	checks := []struct {
		field string
		err   error
	}{
		{FieldRAAN, tl.SetRAAN(angle.Raw(angle.TwoPi))},
		{FieldArgPerigee, tl.SetArgPerigee(angle.Raw(3 * angle.TwoPi))},
		{FieldMeanAnomaly, tl.SetMeanAnomaly(angle.Raw(math.Inf(1)))},
		{FieldEccentricity, tl.SetEccentricity(1.5)},
		{FieldMeanMotion, tl.SetMeanMotion(-revPerDay(1))},
		{FieldMeanMotion, tl.SetMeanMotion(revPerDay(18))},
		{FieldNDot, tl.SetNDot(-1)},
		{FieldClassification, tl.SetClassification("")},
		{FieldRevNr, tl.SetRevNr(-5)},
		{FieldElNr, tl.SetElNr(12345)},
		{FieldIntlDesignator, tl.SetIntlDesignator("123456789")},
	}
	for _, c := range checks {
		wantValidation(t, c.err, c.field)
	}

	if got := tl.String(); got != snapshot {
		t.Errorf("rejected setters changed the record:\n got %s\nwant %s", got, snapshot)
	}
}

func TestSetters(t *testing.T) {
	tl := mustNew(t, leoElements())

	if err := tl.SetRAAN(angle.Deg(-10)); err != nil {
		t.Fatalf("SetRAAN failed: %v", err)
	}
	if got := deg(tl.RAAN()); math.Abs(got-350) > 1e-9 {
		t.Errorf("RAAN() = %v°, want 350°", got)
	}
	if err := tl.SetArgPerigee(angle.Of(unit.Angle(1.25))); err != nil {
		t.Fatalf("SetArgPerigee failed: %v", err)
	}
	if tl.ArgPerigee() != 1.25 {
		t.Errorf("ArgPerigee() = %v, want 1.25", tl.ArgPerigee())
	}
	if err := tl.SetMeanAnomaly(angle.Raw(7)); err != nil {
		t.Fatalf("SetMeanAnomaly failed: %v", err)
	}
	if got := float64(tl.MeanAnomaly()); math.Abs(got-(7-angle.TwoPi)) > 1e-12 {
		t.Errorf("MeanAnomaly() = %v, want %v", got, 7-angle.TwoPi)
	}
	if err := tl.SetEccentricity(0.7); err != nil || tl.Eccentricity() != 0.7 {
		t.Errorf("SetEccentricity(0.7) = %v, Eccentricity() = %v", err, tl.Eccentricity())
	}
	if err := tl.SetNDot(-0.5); err != nil || tl.NDot() != -0.5 {
		t.Errorf("SetNDot(-0.5) = %v, NDot() = %v", err, tl.NDot())
	}
	if err := tl.SetClassification("C"); err != nil || tl.Classification() != "C" {
		t.Errorf("SetClassification(C) = %v, Classification() = %q", err, tl.Classification())
	}
	if err := tl.SetRevNr(99999); err != nil || tl.RevNr() != 99999 {
		t.Errorf("SetRevNr(99999) = %v, RevNr() = %d", err, tl.RevNr())
	}
	if err := tl.SetElNr(0); err != nil || tl.ElNr() != 0 {
		t.Errorf("SetElNr(0) = %v, ElNr() = %d", err, tl.ElNr())
	}
	if err := tl.SetIntlDesignator(""); err != nil || tl.IntlDesignator() != "" {
		t.Errorf("SetIntlDesignator(\"\") = %v, IntlDesignator() = %q", err, tl.IntlDesignator())
	}
}

func TestMeanMotionScale(t *testing.T) {
	tl := mustNew(t, leoElements())

	n := revPerDay(14.2)
	if err := tl.SetMeanMotion(n); err != nil {
		t.Fatalf("SetMeanMotion failed: %v", err)
	}
	if got := tl.MeanMotion(); !scalar.EqualWithinRel(got, n, 1e-14) {
		t.Errorf("MeanMotion() = %v rad/s, want %v", got, n)
	}
	if got := tl.rec.NoKozai; !scalar.EqualWithinRel(got, n*60, 1e-14) {
		t.Errorf("stored mean motion = %v rad/min, want %v", got, n*60)
	}
	if got := tl.MeanMotionRevPerDay(); math.Abs(got-14.2) > 1e-12 {
		t.Errorf("MeanMotionRevPerDay() = %v, want 14.2", got)
	}
}

func TestNameCoercion(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithName("")}, {WithName("   ")}} {
		tl := mustNew(t, leoElements(), opts...)
		if tl.Name() != NoName {
			t.Errorf("Name() = %q, want %q", tl.Name(), NoName)
		}
	}

	tl := mustNew(t, leoElements(), WithName("ISS (ZARYA)"))
	tl.SetName("")
	if tl.Name() != NoName {
		t.Errorf("Name() after SetName(\"\") = %q, want %q", tl.Name(), NoName)
	}
	tl.SetName("")
	if tl.Name() != NoName {
		t.Errorf("second SetName(\"\") gave %q", tl.Name())
	}

	fromLines, err := FromLines(issLine1, issLine2)
	if err != nil {
		t.Fatalf("FromLines failed: %v", err)
	}
	if fromLines.Name() != NoName {
		t.Errorf("FromLines Name() = %q, want %q", fromLines.Name(), NoName)
	}
}

func TestRangeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		el := Elements{
			Epoch:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(rng.Int63n(int64(5 * 365 * 24 * time.Hour)))),
			Inclination:  angle.Raw(rng.Float64() * math.Pi),
			RAAN:         angle.Raw((rng.Float64()*3 - 1) * angle.TwoPi / 1.5),
			Eccentricity: rng.Float64() * 0.99,
			ArgPerigee:   angle.Deg(rng.Float64()*720 - 360),
			MeanAnomaly:  angle.Raw(rng.Float64() * angle.TwoPi),
			MeanMotion:   revPerDay(0.5 + rng.Float64()*16.5),
			BStar:        rng.NormFloat64() * 1e-4,
			NDot:         rng.Float64()*1.8 - 0.9,
		}
		tl, err := New(el)
		if err != nil {
			t.Fatalf("case %d: New failed: %v", i, err)
		}

		if incl := float64(tl.Inclination()); incl < 0 || incl >= math.Pi {
			t.Fatalf("inclination %v outside [0, π)", incl)
		}
		for name, a := range map[string]unit.Angle{"raan": tl.RAAN(), "arg_perigee": tl.ArgPerigee(), "mean_anomaly": tl.MeanAnomaly()} {
			if a < 0 || float64(a) >= angle.TwoPi {
				t.Fatalf("%s %v outside [0, 2π)", name, a)
			}
		}
		if e := tl.Eccentricity(); e < 0 || e >= 1 {
			t.Fatalf("eccentricity %v outside [0, 1)", e)
		}
		if n := tl.MeanMotionRevPerDay(); n <= 0 || n > MaxMeanMotion+1e-9 {
			t.Fatalf("mean motion %v rev/day outside (0, 17]", n)
		}
		if d := tl.NDot(); math.Abs(d) >= 1 {
			t.Fatalf("n_dot %v outside (-1, 1)", d)
		}
	}
}

func TestRoundTripThroughText(t *testing.T) {
	tests := []struct {
		name string
		el   Elements
	}{
		{"leo", leoElements()},
		{"molniya", Elements{
			Epoch:        time.Date(2023, 11, 2, 3, 14, 15, 926000000, time.UTC),
			Inclination:  angle.Deg(63.4),
			RAAN:         angle.Deg(-45.25),
			Eccentricity: 0.7214,
			ArgPerigee:   angle.Deg(270.1234),
			MeanAnomaly:  angle.Deg(12.3456),
			MeanMotion:   revPerDay(2.00612345),
			BStar:        -0.34e-3,
			NDot:         -0.00000123,
		}},
		{"retrograde", Elements{
			Epoch:        time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
			Inclination:  angle.Deg(98.7),
			RAAN:         angle.Raw(5.5),
			Eccentricity: 0.0011234,
			ArgPerigee:   angle.Raw(0.25),
			MeanAnomaly:  angle.Raw(6.2),
			MeanMotion:   revPerDay(14.3),
			NDot:         0.0001,
		}},
	}

	const angleTol = 1e-4 * math.Pi / 180

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := mustNew(t, tt.el, WithName("TEST SAT"), WithSatNumber(12345), WithIntlDesignator("20001A"), WithRevNr(4242), WithElNr(17))

			back, err := Parse(orig.String())
			if err != nil {
				t.Fatalf("Parse(String()) failed: %v\n%s", err, orig)
			}

			angles := []struct {
				name      string
				got, want unit.Angle
			}{
				{"inclination", back.Inclination(), orig.Inclination()},
				{"raan", back.RAAN(), orig.RAAN()},
				{"arg_perigee", back.ArgPerigee(), orig.ArgPerigee()},
				{"mean_anomaly", back.MeanAnomaly(), orig.MeanAnomaly()},
			}
			for _, a := range angles {
				if math.Abs(float64(a.got-a.want)) > angleTol {
					t.Errorf("%s = %v°, want %v°", a.name, deg(a.got), deg(a.want))
				}
			}
			if math.Abs(back.Eccentricity()-orig.Eccentricity()) > 1e-8 {
				t.Errorf("eccentricity = %v, want %v", back.Eccentricity(), orig.Eccentricity())
			}
			if math.Abs(back.MeanMotionRevPerDay()-orig.MeanMotionRevPerDay()) > 1e-8 {
				t.Errorf("mean motion = %v rev/day, want %v", back.MeanMotionRevPerDay(), orig.MeanMotionRevPerDay())
			}
			if d := back.Epoch().Sub(orig.Epoch()).Abs(); d > time.Millisecond {
				t.Errorf("epoch off by %v", d)
			}
			if back.Name() != "TEST SAT" || back.SatNumber() != 12345 || back.IntlDesignator() != "20001A" ||
				back.RevNr() != 4242 || back.ElNr() != 17 {
				t.Errorf("metadata = %q/%d/%q/%d/%d", back.Name(), back.SatNumber(), back.IntlDesignator(), back.RevNr(), back.ElNr())
			}
		})
	}
}

func TestGeo(t *testing.T) {
	epochs := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2010, 7, 1, 18, 30, 0, 0, time.UTC),
	}
	longitudes := []angle.Input{angle.Deg(0), angle.Deg(42), angle.Deg(-75.5), angle.Raw(3)}

	for _, epoch := range epochs {
		for _, lon := range longitudes {
			g, err := NewGeo(epoch, lon, WithName("GEO TEST"))
			if err != nil {
				t.Fatalf("NewGeo(%v, %v) failed: %v", epoch, lon.Value(), err)
			}

			if d := math.Abs(g.Period().Seconds() - transform.SiderealDay); d > 1e-6 {
				t.Errorf("Period() = %v s, want %v s", g.Period().Seconds(), transform.SiderealDay)
			}

			want := transform.LMST(epoch, angle.ToRadians(lon))
			diff := math.Mod(float64(g.RAAN())-want+3*math.Pi, angle.TwoPi) - math.Pi
			if math.Abs(diff) > 1e-12 {
				t.Errorf("RAAN() = %v, want LMST %v", g.RAAN(), want)
			}

			if g.Inclination() != 0 || g.ArgPerigee() != 0 || g.MeanAnomaly() != 0 {
				t.Errorf("geo angles = %v/%v/%v, want zero", g.Inclination(), g.ArgPerigee(), g.MeanAnomaly())
			}
			if g.Eccentricity() != GeoEccentricity || g.BStar() != 0 || g.NDot() != 0 {
				t.Errorf("geo e/bstar/ndot = %v/%v/%v", g.Eccentricity(), g.BStar(), g.NDot())
			}
			if g.Name() != "GEO TEST" {
				t.Errorf("Name() = %q", g.Name())
			}
		}
	}
}

func TestGeoSemiMajorAxis(t *testing.T) {
	g, err := NewGeo(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), angle.Deg(10))
	if err != nil {
		t.Fatalf("NewGeo failed: %v", err)
	}
	km := float64(g.SemiMajorAxis()) / 1000
	if math.Abs(km-42164.18) > 0.05 {
		t.Errorf("SemiMajorAxis() = %.3f km, want ~42164.18 km", km)
	}
	if r := g.NodeRotationRate(); math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
		t.Errorf("NodeRotationRate() = %v, want finite", r)
	}
}

func TestGeoRejectsBadMetadata(t *testing.T) {
	_, err := NewGeo(time.Now(), angle.Deg(0), WithClassification("Q"))
	wantValidation(t, err, FieldClassification)
}

func TestISS(t *testing.T) {
	iss, err := FromLines(issLine1, issLine2, WithName("ISS (ZARYA)"))
	if err != nil {
		t.Fatalf("FromLines failed: %v", err)
	}

	if iss.SatNumber() != 25544 {
		t.Errorf("SatNumber() = %d, want 25544", iss.SatNumber())
	}
	if got := deg(iss.Inclination()); math.Abs(got-51.6416) > 1e-9 {
		t.Errorf("Inclination() = %v°, want 51.6416°", got)
	}
	if got := iss.Eccentricity(); math.Abs(got-0.0006703) > 1e-12 {
		t.Errorf("Eccentricity() = %v, want 0.0006703", got)
	}

	// 1440 / 15.72125391 rev/day.
	if got := iss.Period().Minutes(); math.Abs(got-91.5957) > 1e-3 {
		t.Errorf("Period() = %.4f min, want 91.5957 min", got)
	}
	if got := float64(iss.SemiMajorAxis()) / 1000; math.Abs(got-6730.963) > 0.01 {
		t.Errorf("SemiMajorAxis() = %.3f km, want 6730.963 km", got)
	}
	if got := iss.NodeRotationRate().DegreesPerDay(); math.Abs(got+5.1214) > 1e-3 {
		t.Errorf("NodeRotationRate() = %.4f°/day, want -5.1214°/day", got)
	}
	if got := iss.ArgPerigeeRotationRate().DegreesPerDay(); math.Abs(got-3.8192) > 1e-3 {
		t.Errorf("ArgPerigeeRotationRate() = %.4f°/day, want 3.8192°/day", got)
	}

	wantEpoch := time.Date(2008, 9, 20, 12, 25, 40, 104192000, time.UTC)
	if d := iss.Epoch().Sub(wantEpoch).Abs(); d > time.Microsecond {
		t.Errorf("Epoch() = %v, want %v", iss.Epoch(), wantEpoch)
	}

	l1, l2 := iss.Lines()
	if l1 != issLine1 || l2 != issLine2 {
		t.Errorf("Lines() changed the element set:\n%s\n%s", l1, l2)
	}
	if want := "ISS (ZARYA)\n" + issLine1 + "\n" + issLine2; iss.String() != want {
		t.Errorf("String() = %q, want %q", iss.String(), want)
	}
}

func TestFromLinesDecodeErrors(t *testing.T) {
	_, err := FromLines(issLine1, issLine2[:68]+"0")
	if !errors.Is(err, satrec.ErrMalformed) {
		t.Fatalf("error = %v, want satrec.ErrMalformed", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("decode error %v also matches ErrValidation", err)
	}
}

func TestFromLinesProfile(t *testing.T) {
	a, err := FromLines(issLine1, issLine2)
	if err != nil {
		t.Fatalf("FromLines failed: %v", err)
	}
	b, err := FromLines(issLine1, issLine2, WithProfile(gravity.WGS84))
	if err != nil {
		t.Fatalf("FromLines(WGS84) failed: %v", err)
	}
	if a.Profile() != gravity.WGS72 || b.Profile() != gravity.WGS84 {
		t.Fatalf("profiles = %s/%s, want wgs72/wgs84", a.Profile().Name, b.Profile().Name)
	}
	if a.SemiMajorAxis() == b.SemiMajorAxis() {
		t.Errorf("SemiMajorAxis() is the same under wgs72 and wgs84")
	}
}

func TestNodeRateInclinationDependence(t *testing.T) {
	rate := func(inclDeg float64) float64 {
		el := leoElements()
		el.Inclination = angle.Deg(inclDeg)
		return float64(mustNew(t, el).NodeRotationRate())
	}

	low, polar := rate(5), rate(90)
	if math.Abs(low) <= math.Abs(polar) {
		t.Errorf("|node rate| at 5° = %v, not larger than at 90° = %v", math.Abs(low), math.Abs(polar))
	}
	if low >= 0 {
		t.Errorf("node rate at 5° = %v, want regression (negative)", low)
	}
	if math.Abs(polar) > 1e-12 {
		t.Errorf("node rate at 90° = %v, want ~0", polar)
	}
	if retro := rate(98); retro <= 0 {
		t.Errorf("node rate at 98° = %v, want positive", retro)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
	}{
		{"two lines", issLine1 + "\n" + issLine2 + "\n", NoName},
		{"three lines", "ISS (ZARYA)\n" + issLine1 + "\n" + issLine2, "ISS (ZARYA)"},
		{"catalog name prefix", "0 ISS (ZARYA)\r\n" + issLine1 + "\r\n" + issLine2 + "\r\n", "ISS (ZARYA)"},
		{"blank lines", "\n\nISS\n\n" + issLine1 + "\n\n" + issLine2 + "\n\n", "ISS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if tl.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", tl.Name(), tt.wantName)
			}
			if tl.SatNumber() != 25544 {
				t.Errorf("SatNumber() = %d, want 25544", tl.SatNumber())
			}
		})
	}

	tl, err := Parse("ISS\n"+issLine1+"\n"+issLine2, WithName("OVERRIDE"))
	if err != nil {
		t.Fatalf("Parse with WithName failed: %v", err)
	}
	if tl.Name() != "OVERRIDE" {
		t.Errorf("Name() = %q, want OVERRIDE", tl.Name())
	}

	for _, bad := range []string{"", issLine1, strings.Repeat(issLine1+"\n", 4)} {
		if _, err := Parse(bad); !errors.Is(err, satrec.ErrMalformed) {
			t.Errorf("Parse(%d lines) error = %v, want ErrMalformed", strings.Count(bad, "\n")+1, err)
		}
	}
}

func TestNewEpochWindow(t *testing.T) {
	tests := []struct {
		name  string
		epoch time.Time
		ok    bool
	}{
		{"first representable year", time.Date(1957, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"last representable year", time.Date(2056, 12, 31, 23, 0, 0, 0, time.UTC), true},
		{"before 1957", time.Date(1956, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"2057 wraps to 1957", time.Date(2057, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"zero time", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := leoElements()
			el.Epoch = tt.epoch
			tl, err := New(el)
			if !tt.ok {
				wantValidation(t, err, FieldEpoch)
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			back, err := Parse(tl.String())
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if d := back.Epoch().Sub(tt.epoch); d < -time.Millisecond || d > time.Millisecond {
				t.Errorf("epoch came back as %v, want %v", back.Epoch(), tt.epoch)
			}
		})
	}

	if _, err := NewGeo(time.Date(2060, 6, 1, 0, 0, 0, 0, time.UTC), angle.Deg(0)); err == nil {
		t.Error("NewGeo accepted an epoch past 2056")
	}
}
