package transform

import (
	"math"
	"time"
)

// The two-digit epoch year covers 1957 through 2056. YearDay drops the
// century, so instants outside [FirstEpochYear, LastEpochYear] do not
// survive an encode/decode round trip.
const (
	FirstEpochYear = 1957
	LastEpochYear  = 2056
)

// YearDay returns the two-digit year and the 1-based fractional day of year
// of t in UTC, the epoch encoding used on line 1 of an element set.
// Noon on January 1st is day 1.5.
func YearDay(t time.Time) (yy int, days float64) {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	sinceMidnight := t.Sub(midnight)

	days = float64(t.YearDay()) + sinceMidnight.Seconds()/secondsPerDay
	return t.Year() % 100, days
}

// YearFromTwoDigit expands a two-digit element set year: 57-99 map to the
// 1900s, 00-56 to the 2000s.
func YearFromTwoDigit(yy int) int {
	if yy >= 57 {
		return 1900 + yy
	}
	return 2000 + yy
}

// JulianDatePairFromYearDay returns the two-part Julian Date for a two-digit
// year and fractional day of year. The whole part lands on a UTC midnight.
func JulianDatePairFromYearDay(yy int, days float64) (jd1, jd2 float64) {
	jan1, _ := JulianDatePair(time.Date(YearFromTwoDigit(yy), time.January, 1, 0, 0, 0, 0, time.UTC))
	whole := math.Floor(days)
	return jan1 + whole - 1, days - whole
}
