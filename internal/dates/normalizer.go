// Package dates recognizes the date encodings that show up in document
// filenames and normalizes them to a single canonical YYYY-MM-DD form.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Precision records how much of a date was actually present in the source
// token before materialization filled in the missing part.
type Precision int

const (
	PrecisionDay Precision = iota
	PrecisionMonth
	PrecisionYear
)

// String returns a human-readable precision label for report rows.
func (p Precision) String() string {
	switch p {
	case PrecisionDay:
		return "exact-day"
	case PrecisionMonth:
		return "month-only"
	case PrecisionYear:
		return "year-only"
	default:
		return "unknown"
	}
}

// Encoding identifies which recognized source encoding a token matched.
type Encoding string

const (
	EncodingFullDate   Encoding = "full-date"
	EncodingMonthYear  Encoding = "month-year"
	EncodingYearOnly   Encoding = "year-only"
	EncodingStamp      Encoding = "embedded-stamp"
	EncodingUnparsable Encoding = "unparsable"
)

// NormalizedDate is the canonical result of recognizing a raw date token.
// Canonical is always a syntactically valid calendar date, even when the
// precision is coarser than a day.
type NormalizedDate struct {
	Canonical string
	Precision Precision
	Encoding  Encoding
}

// Time returns the canonical date as a time.Time at midnight UTC.
func (n NormalizedDate) Time() time.Time {
	t, _ := time.Parse("2006-01-02", n.Canonical)
	return t
}

// ErrUnparsable is returned when a token matches none of the recognized
// encodings, or matches one numerically but is not a valid calendar date.
var ErrUnparsable = fmt.Errorf("date token matches no recognized encoding")

// encoding pairs a name with a matcher that either recognizes the token and
// materializes a NormalizedDate, or declines. The list below is tried in
// order, most specific first, so a looser pattern can never swallow a
// stricter one.
type encoding struct {
	kind  Encoding
	match func(token string) (NormalizedDate, bool)
}

var encodings = []encoding{
	{EncodingFullDate, matchFullDate},
	{EncodingMonthYear, matchMonthYear},
	{EncodingYearOnly, matchYearOnly},
	{EncodingStamp, matchEmbeddedStamp},
}

// Normalize attempts each recognized encoding in priority order and returns
// the first match. Tokens that match nothing, or that look plausible but are
// not valid calendar dates, return ErrUnparsable.
func Normalize(token string) (NormalizedDate, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return NormalizedDate{Encoding: EncodingUnparsable}, ErrUnparsable
	}

	for _, enc := range encodings {
		if nd, ok := enc.match(trimmed); ok {
			return nd, nil
		}
	}

	return NormalizedDate{Encoding: EncodingUnparsable}, ErrUnparsable
}

var (
	fullDateRe  = regexp.MustCompile(`^(\d{4})[-._](\d{1,2})[-._](\d{1,2})$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})[-._/](\d{1,2})$`)
	monthYearRe = regexp.MustCompile(`^(\d{1,2})[-._/](\d{4})$`)
	textMonthRe = regexp.MustCompile(`^([A-Za-z]+)[ -._]+(\d{4})$`)
	yearOnlyRe  = regexp.MustCompile(`^(\d{4})$`)
	digitRunRe  = regexp.MustCompile(`\d+`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// matchFullDate recognizes YYYY-MM-DD and its . and _ separator variants.
func matchFullDate(token string) (NormalizedDate, bool) {
	m := fullDateRe.FindStringSubmatch(token)
	if m == nil {
		return NormalizedDate{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if !validCalendarDate(year, month, day) {
		return NormalizedDate{}, false
	}

	return NormalizedDate{
		Canonical: canonical(year, month, day),
		Precision: PrecisionDay,
		Encoding:  EncodingFullDate,
	}, true
}

// matchMonthYear recognizes MM-YYYY, YYYY-MM and textual month + year forms.
// Month-only dates materialize to day 01 of the month: a neutral,
// order-preserving default.
func matchMonthYear(token string) (NormalizedDate, bool) {
	var year, month int

	switch {
	case yearMonthRe.MatchString(token):
		m := yearMonthRe.FindStringSubmatch(token)
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
	case monthYearRe.MatchString(token):
		m := monthYearRe.FindStringSubmatch(token)
		month, _ = strconv.Atoi(m[1])
		year, _ = strconv.Atoi(m[2])
	case textMonthRe.MatchString(token):
		m := textMonthRe.FindStringSubmatch(token)
		named, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			return NormalizedDate{}, false
		}
		month = int(named)
		year, _ = strconv.Atoi(m[2])
	default:
		return NormalizedDate{}, false
	}

	if !validCalendarDate(year, month, 1) {
		return NormalizedDate{}, false
	}

	return NormalizedDate{
		Canonical: canonical(year, month, 1),
		Precision: PrecisionMonth,
		Encoding:  EncodingMonthYear,
	}, true
}

// matchYearOnly recognizes a bare four-digit year. Year-only dates
// materialize to mid-year (June 1st), which minimizes the worst-case
// distance from the true unknown date.
func matchYearOnly(token string) (NormalizedDate, bool) {
	m := yearOnlyRe.FindStringSubmatch(token)
	if m == nil {
		return NormalizedDate{}, false
	}

	year, _ := strconv.Atoi(m[1])
	if year < 1000 || year > 9999 {
		return NormalizedDate{}, false
	}

	return NormalizedDate{
		Canonical: canonical(year, 6, 1),
		Precision: PrecisionYear,
		Encoding:  EncodingYearOnly,
	}, true
}

// matchEmbeddedStamp recognizes an 8-digit YYYYMMDD run embedded inside a
// longer stamp, the pattern expense-report IDs use. Timestamp-style runs
// carry the date in the leading 8 digits (D:YYYYMMDDHHMM and friends), so
// each digit run of at least 8 digits is tried by its prefix. The first run
// that forms a valid calendar date wins.
func matchEmbeddedStamp(token string) (NormalizedDate, bool) {
	for _, run := range digitRunRe.FindAllString(token, -1) {
		if len(run) < 8 {
			continue
		}

		year, _ := strconv.Atoi(run[:4])
		month, _ := strconv.Atoi(run[4:6])
		day, _ := strconv.Atoi(run[6:8])

		if !validCalendarDate(year, month, day) {
			continue
		}

		return NormalizedDate{
			Canonical: canonical(year, month, day),
			Precision: PrecisionDay,
			Encoding:  EncodingStamp,
		}, true
	}

	return NormalizedDate{}, false
}

// validCalendarDate checks month and day ranges against the real calendar,
// leap years included. An in-range-looking but invalid date (day 31 in a
// 30-day month) is rejected, never clamped.
func validCalendarDate(year, month, day int) bool {
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && t.Month() == time.Month(month) && t.Day() == day
}

func canonical(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
