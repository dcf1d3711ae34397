package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Logger is the minimal logging interface needed by Parser.
type Logger interface {
	Warn(string, ...interface{})
}

// Parser turns tag strings into zone-naive timestamps. The zero value is
// usable and logs nothing; construct with [NewParser] to get warnings for
// unsupported inputs.
type Parser struct {
	log Logger
}

// NewParser returns a Parser that reports unsupported inputs to log.
// A nil log is allowed.
func NewParser(log Logger) *Parser {
	return &Parser{log: log}
}

// --- Layout tables (tried in order, first match wins) ---

// zonedLayouts carry their own zone or offset.
var zonedLayouts = []string{
	time.RFC1123Z,                         // Sat, 08 Jun 2024 15:30:45 +0300
	time.RFC1123,                          // Sat, 08 Jun 2024 15:30:45 EEST
	"Mon, 02 Jan 2006 15:04:05.000 -0700", // with milliseconds
	"Mon Jan 02 15:04:05 MST 2006",        // date(1) output
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339, // also accepts a trailing Z and fractional seconds
}

// naiveLayouts carry no zone and are read at the resolved offset.
var naiveLayouts = []string{
	"2006:01:02 15:04:05", // EXIF
	"2006:01:02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"Mon, 02 Jan 2006 15:04:05",
	time.ANSIC, // AVI IDIT chunks
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"20060102",
}

var (
	reYearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	reYear      = regexp.MustCompile(`^\d{4}$`)
	reOffset    = regexp.MustCompile(`^[+-](\d{1,2}|\d{2}:\d{2}|\d{4}|\d{2}:\d{2}:\d{2}|\d{6})$`)
)

// maxOffset is the largest accepted UTC offset, ±18:00.
const maxOffset = 18 * 60 * 60

// Parse is ParseWithOffset without an explicit offset (UTC).
func (p *Parser) Parse(text string) (time.Time, bool) {
	return p.ParseWithOffset(text, "")
}

// ParseWithOffset parses text using the ordered layout tables. offset is
// an optional UTC offset such as "+03:00" that applies to zone-naive
// layouts; an empty offset means UTC. A non-empty offset that is not a
// valid UTC offset makes the whole parse fail.
//
// The returned time is zone-naive: its wall clock equals the one written
// in text and its location is UTC.
func (p *Parser) ParseWithOffset(text, offset string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	// Parsing in UTC keeps unknown zone names from being resolved against
	// the local zone database, which could move the wall clock.
	for _, layout := range zonedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return naive(t), true
		}
	}

	loc := time.UTC
	if o := strings.TrimSpace(offset); o != "" {
		l, ok := parseOffset(o)
		if !ok {
			p.warn("Invalid offset provided: %s", offset)
			return time.Time{}, false
		}
		loc = l
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return naive(t), true
		}
	}

	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, ok := parseShortForms(s); ok {
		return t, true
	}

	p.warn("Date format not supported: %s", s)
	return time.Time{}, false
}

// parseShortForms handles "yyyy-MM" (first of the month) and "yyyy"
// (January 1st).
func parseShortForms(s string) (time.Time, bool) {
	switch {
	case len(s) == 7 && reYearMonth.MatchString(s):
		year, _ := strconv.Atoi(s[:4])
		month, _ := strconv.Atoi(s[5:])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
	case len(s) == 4 && reYear.MatchString(s):
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// parseOffset accepts "Z", ±h, ±hh, ±hh:mm, ±hhmm, ±hh:mm:ss and ±hhmmss.
func parseOffset(s string) (*time.Location, bool) {
	if s == "Z" || s == "z" {
		return time.UTC, true
	}
	if !reOffset.MatchString(s) {
		return nil, false
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	if len(digits) == 1 {
		digits = "0" + digits
	}
	var parts [3]int
	for i := 0; i*2 < len(digits); i++ {
		parts[i], _ = strconv.Atoi(digits[i*2 : i*2+2])
	}
	hours, minutes, seconds := parts[0], parts[1], parts[2]
	if minutes > 59 || seconds > 59 {
		return nil, false
	}
	total := hours*3600 + minutes*60 + seconds
	if total > maxOffset {
		return nil, false
	}
	return time.FixedZone(s, sign*total), true
}

// naive drops the location of t and keeps its wall clock.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (p *Parser) warn(format string, args ...interface{}) {
	if p == nil || p.log == nil {
		return
	}
	p.log.Warn(format, args...)
}

// FindMinOrNil returns the earliest non-nil value, or nil when values is
// empty or holds only nils.
func FindMinOrNil(values ...*time.Time) *time.Time {
	var earliest *time.Time
	for _, v := range values {
		if v == nil {
			continue
		}
		if earliest == nil || v.Before(*earliest) {
			earliest = v
		}
	}
	return earliest
}
