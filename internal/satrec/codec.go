package satrec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/transform"
)

// LineLength is the length of both element lines including the checksum digit.
const LineLength = 69

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// ErrMalformed is matched by every decoding error.
var ErrMalformed = errors.New("malformed element set")

// FormatError reports a line that does not follow the fixed-column layout.
type FormatError struct {
	Line   int    // 1 or 2, 0 when the problem is not tied to one line
	Field  string // field or column the problem was found in
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *FormatError) Unwrap() error { return ErrMalformed }

type column struct {
	at   int
	want byte
}

// separators lists, per line, the columns that must hold a fixed character.
var separators = [3][]column{
	1: {{0, '1'}, {1, ' '}, {8, ' '}, {17, ' '}, {23, '.'}, {32, ' '}, {34, '.'}, {43, ' '}, {52, ' '}, {61, ' '}, {63, ' '}},
	2: {{0, '2'}, {1, ' '}, {7, ' '}, {11, '.'}, {16, ' '}, {20, '.'}, {25, ' '}, {33, ' '}, {37, '.'}, {42, ' '}, {46, '.'}, {51, ' '}, {54, '.'}},
}

// Checksum returns the modulo-10 checksum of the first 68 columns of line:
// the sum of all digits, with each minus sign counting as one.
func Checksum(line string) int {
	sum := 0
	for i := 0; i < len(line) && i < LineLength-1; i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// Decode parses the two fixed-column lines of an element set into a
// container bound to profile p. Trailing whitespace is ignored.
func Decode(line1, line2 string, p gravity.Profile) (*Satrec, error) {
	l1 := strings.TrimRight(line1, " \r\n")
	l2 := strings.TrimRight(line2, " \r\n")

	if err := CheckLayout(1, l1); err != nil {
		return nil, err
	}
	if err := CheckLayout(2, l2); err != nil {
		return nil, err
	}
	if l1[2:7] != l2[2:7] {
		return nil, &FormatError{Line: 2, Field: "catalog number",
			Reason: fmt.Sprintf("%q does not match line 1 %q", l2[2:7], l1[2:7])}
	}

	d := decoder{}
	s := &Satrec{Gravity: p, OpsMode: OpsModeImproved}

	d.line = 1
	s.SatNum = d.int("catalog number", l1[2:7])
	s.Classification = string(l1[7])
	s.IntlDesg = strings.TrimRight(l1[9:17], " ")
	s.EpochYr = d.int("epoch year", l1[18:20])
	s.EpochDays = d.float("epoch day", l1[20:32], false)
	s.NDot = d.float("mean motion first derivative", l1[33:43], true)
	s.NDDot = d.exp("mean motion second derivative", l1[44:52])
	s.BStar = d.exp("bstar", l1[53:61])
	s.EphType = d.int("ephemeris type", l1[62:63])
	s.ElNum = d.int("element set number", l1[64:68])

	d.line = 2
	s.Inclo = d.float("inclination", l2[8:16], false) * deg2rad
	s.Nodeo = d.float("raan", l2[17:25], false) * deg2rad
	s.Ecco = d.fraction("eccentricity", l2[26:33])
	s.Argpo = d.float("argument of perigee", l2[34:42], false) * deg2rad
	s.Mo = d.float("mean anomaly", l2[43:51], false) * deg2rad
	s.NoKozai = d.float("mean motion", l2[52:63], false) * 2 * math.Pi / minutesPerDay
	s.RevNum = d.int("revolution number", l2[63:68])

	if d.err != nil {
		return nil, d.err
	}

	s.JDSatEpoch, s.JDSatEpochF = transform.JulianDatePairFromYearDay(s.EpochYr, s.EpochDays)
	return s, nil
}

// CheckLayout checks line n (1 or 2) for length, fixed separator columns
// and checksum.
func CheckLayout(n int, line string) error {
	if len(line) != LineLength {
		return &FormatError{Line: n, Field: "length",
			Reason: fmt.Sprintf("got %d columns, expected %d", len(line), LineLength)}
	}
	for _, c := range separators[n] {
		if line[c.at] != c.want {
			return &FormatError{Line: n, Field: fmt.Sprintf("column %d", c.at+1),
				Reason: fmt.Sprintf("got %q, expected %q", line[c.at], c.want)}
		}
	}
	sum := line[LineLength-1]
	if sum < '0' || sum > '9' {
		return &FormatError{Line: n, Field: "checksum", Reason: fmt.Sprintf("%q is not a digit", sum)}
	}
	if want := Checksum(line); int(sum-'0') != want {
		return &FormatError{Line: n, Field: "checksum", Reason: fmt.Sprintf("got %c, computed %d", sum, want)}
	}
	return nil
}

// decoder keeps the first field error so Decode can parse straight through.
type decoder struct {
	line int
	err  error
}

func (d *decoder) fail(field, raw string, err error) {
	if d.err == nil {
		d.err = &FormatError{Line: d.line, Field: field, Reason: fmt.Sprintf("cannot parse %q: %v", raw, err)}
	}
}

var (
	errNotDigits     = errors.New("expected digits")
	errNotFixedPoint = errors.New("expected a fixed-point number")
)

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// int parses a right-aligned unsigned integer. A blank field reads as zero.
func (d *decoder) int(field, raw string) int {
	s := strings.TrimLeft(raw, " ")
	if s == "" {
		return 0
	}
	if !isDigits(s) {
		d.fail(field, raw, errNotDigits)
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		d.fail(field, raw, err)
	}
	return v
}

// float parses a right-aligned fixed-point number: leading blanks, a sign
// when signed, then digits with at most one decimal point. Exponents,
// NaN/Inf and hex forms are rejected.
func (d *decoder) float(field, raw string, signed bool) float64 {
	s := strings.TrimLeft(raw, " ")
	body := s
	if signed && body != "" && (body[0] == '-' || body[0] == '+') {
		body = body[1:]
	}
	intPart, frac, _ := strings.Cut(body, ".")
	if intPart+frac == "" || !isDigits(intPart) || !isDigits(frac) {
		d.fail(field, raw, errNotFixedPoint)
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(field, raw, err)
	}
	return v
}

// fraction parses digits with an implied leading decimal point.
func (d *decoder) fraction(field, raw string) float64 {
	s := strings.ReplaceAll(raw, " ", "0")
	if !isDigits(s) {
		d.fail(field, raw, errNotDigits)
		return 0
	}
	v, err := strconv.ParseFloat("0."+s, 64)
	if err != nil {
		d.fail(field, raw, err)
	}
	return v
}

// exp parses the 8-column assumed-decimal exponent notation, e.g.
// "-11606-4" for -0.11606e-4.
func (d *decoder) exp(field, raw string) float64 {
	sign := 1.0
	switch raw[0] {
	case '-':
		sign = -1
	case ' ', '+':
	default:
		d.fail(field, raw, errors.New("bad sign"))
		return 0
	}
	mant := strings.ReplaceAll(raw[1:6], " ", "0")
	if !isDigits(mant) {
		d.fail(field, raw, errors.New("bad mantissa"))
		return 0
	}
	if (raw[6] != '-' && raw[6] != '+' && raw[6] != ' ') || !isDigits(raw[7:8]) {
		d.fail(field, raw, errors.New("bad exponent"))
		return 0
	}
	m, err := strconv.ParseFloat("0."+mant, 64)
	if err != nil {
		d.fail(field, raw, err)
		return 0
	}
	e := int(raw[7] - '0')
	if raw[6] == '-' {
		e = -e
	}
	return sign * m * math.Pow10(e)
}

// Encode writes the container as two fixed-column lines with checksums.
func (s *Satrec) Encode() (line1, line2 string) {
	class := s.Classification
	if class == "" {
		class = "U"
	}

	line1 = fmt.Sprintf("1 %05d%.1s %-8.8s %02d%012.8f %s %s %s %d %4d",
		s.SatNum%100000, class, s.IntlDesg,
		s.EpochYr%100, s.EpochDays,
		formatDecimal(s.NDot),
		formatExp(s.NDDot, '-'),
		formatExp(s.BStar, '+'),
		s.EphType%10, s.ElNum%10000,
	)
	line1 += strconv.Itoa(Checksum(line1))

	line2 = fmt.Sprintf("2 %05d %8.4f %8.4f %07d %8.4f %8.4f %11.8f%5d",
		s.SatNum%100000,
		s.Inclo*rad2deg, s.Nodeo*rad2deg,
		min(int64(math.Round(s.Ecco*1e7)), 9999999),
		s.Argpo*rad2deg, s.Mo*rad2deg,
		s.MeanMotionRevPerDay(),
		s.RevNum%100000,
	)
	line2 += strconv.Itoa(Checksum(line2))

	return line1, line2
}

// formatDecimal writes |v| < 1 as a sign column followed by ".dddddddd".
// Values that round to 1 or more are clamped to ".99999999".
func formatDecimal(v float64) string {
	s := fmt.Sprintf("% .8f", v)
	if !strings.HasPrefix(s[1:], "0.") {
		return s[:1] + ".99999999"
	}
	return s[:1] + s[2:]
}

// formatExp writes v in the 8-column assumed-decimal exponent notation. A
// zero exponent is written with zeroSign, which differs between fields by
// convention ("00000-0" for the second derivative, "00000+0" for bstar).
func formatExp(v float64, zeroSign byte) string {
	sign := byte(' ')
	if v < 0 {
		sign = '-'
		v = -v
	}

	if v == 0 {
		return fmt.Sprintf(" 00000%c0", zeroSign)
	}

	e := int(math.Floor(math.Log10(v))) + 1
	digits := int(math.Round(v / math.Pow10(e) * 1e5))
	if digits >= 100000 {
		digits /= 10
		e++
	}

	switch {
	case e < -9:
		return fmt.Sprintf(" 00000%c0", zeroSign)
	case e > 9:
		e, digits = 9, 99999
	}

	expSign := byte('+')
	if e < 0 {
		expSign = '-'
		e = -e
	} else if e == 0 {
		expSign = zeroSign
	}

	return fmt.Sprintf("%c%05d%c%d", sign, digits, expSign, e)
}
