package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// --- Enum types for file-name date/time fragments ---

// DateFormat selects how the date part of a timestamp is rendered.
type DateFormat string

const (
	DateNone DateFormat = "do_not_use" // Omit the date.

	DateYYYYMMDDTogether    DateFormat = "yyyy_mm_dd_together"    // 20240608
	DateYYYYMMDDSpaced      DateFormat = "yyyy_mm_dd_spaced"      // 2024 06 08
	DateYYYYMMDDUnderscored DateFormat = "yyyy_mm_dd_underscored" // 2024_06_08
	DateYYYYMMDDDotted      DateFormat = "yyyy_mm_dd_dotted"      // 2024.06.08
	DateYYYYMMDDDashed      DateFormat = "yyyy_mm_dd_dashed"      // 2024-06-08

	DateYYMMDDTogether    DateFormat = "yy_mm_dd_together"
	DateYYMMDDSpaced      DateFormat = "yy_mm_dd_spaced"
	DateYYMMDDUnderscored DateFormat = "yy_mm_dd_underscored"
	DateYYMMDDDotted      DateFormat = "yy_mm_dd_dotted"
	DateYYMMDDDashed      DateFormat = "yy_mm_dd_dashed"

	DateMMDDYYYYTogether    DateFormat = "mm_dd_yyyy_together"
	DateMMDDYYYYSpaced      DateFormat = "mm_dd_yyyy_spaced"
	DateMMDDYYYYUnderscored DateFormat = "mm_dd_yyyy_underscored"
	DateMMDDYYYYDotted      DateFormat = "mm_dd_yyyy_dotted"
	DateMMDDYYYYDashed      DateFormat = "mm_dd_yyyy_dashed"

	DateMMDDYYTogether    DateFormat = "mm_dd_yy_together"
	DateMMDDYYSpaced      DateFormat = "mm_dd_yy_spaced"
	DateMMDDYYUnderscored DateFormat = "mm_dd_yy_underscored"
	DateMMDDYYDotted      DateFormat = "mm_dd_yy_dotted"
	DateMMDDYYDashed      DateFormat = "mm_dd_yy_dashed"

	DateDDMMYYYYTogether    DateFormat = "dd_mm_yyyy_together"
	DateDDMMYYYYSpaced      DateFormat = "dd_mm_yyyy_spaced"
	DateDDMMYYYYUnderscored DateFormat = "dd_mm_yyyy_underscored"
	DateDDMMYYYYDotted      DateFormat = "dd_mm_yyyy_dotted"
	DateDDMMYYYYDashed      DateFormat = "dd_mm_yyyy_dashed"

	DateDDMMYYTogether    DateFormat = "dd_mm_yy_together"
	DateDDMMYYSpaced      DateFormat = "dd_mm_yy_spaced"
	DateDDMMYYUnderscored DateFormat = "dd_mm_yy_underscored"
	DateDDMMYYDotted      DateFormat = "dd_mm_yy_dotted"
	DateDDMMYYDashed      DateFormat = "dd_mm_yy_dashed"
)

// TimeFormat selects how the time part of a timestamp is rendered.
type TimeFormat string

const (
	TimeNone TimeFormat = "do_not_use" // Omit the time.

	TimeHHMMSS24Together    TimeFormat = "hh_mm_ss_24_together" // 153045
	TimeHHMMSS24Spaced      TimeFormat = "hh_mm_ss_24_spaced"
	TimeHHMMSS24Underscored TimeFormat = "hh_mm_ss_24_underscored"
	TimeHHMMSS24Dotted      TimeFormat = "hh_mm_ss_24_dotted"
	TimeHHMMSS24Dashed      TimeFormat = "hh_mm_ss_24_dashed"

	TimeHHMM24Together    TimeFormat = "hh_mm_24_together" // 1530
	TimeHHMM24Spaced      TimeFormat = "hh_mm_24_spaced"
	TimeHHMM24Underscored TimeFormat = "hh_mm_24_underscored"
	TimeHHMM24Dotted      TimeFormat = "hh_mm_24_dotted"
	TimeHHMM24Dashed      TimeFormat = "hh_mm_24_dashed"

	TimeHHMMSSAmPmTogether    TimeFormat = "hh_mm_ss_am_pm_together" // 033045PM
	TimeHHMMSSAmPmSpaced      TimeFormat = "hh_mm_ss_am_pm_spaced"
	TimeHHMMSSAmPmUnderscored TimeFormat = "hh_mm_ss_am_pm_underscored"
	TimeHHMMSSAmPmDotted      TimeFormat = "hh_mm_ss_am_pm_dotted"
	TimeHHMMSSAmPmDashed      TimeFormat = "hh_mm_ss_am_pm_dashed"

	TimeHHMMAmPmTogether    TimeFormat = "hh_mm_am_pm_together" // 0330PM
	TimeHHMMAmPmSpaced      TimeFormat = "hh_mm_am_pm_spaced"
	TimeHHMMAmPmUnderscored TimeFormat = "hh_mm_am_pm_underscored"
	TimeHHMMAmPmDotted      TimeFormat = "hh_mm_am_pm_dotted"
	TimeHHMMAmPmDashed      TimeFormat = "hh_mm_am_pm_dashed"
)

// DateTimeFormat selects how date and time fragments are combined.
type DateTimeFormat string

const (
	DateTimeTogether    DateTimeFormat = "date_time_together"
	DateTimeSpaced      DateTimeFormat = "date_time_spaced"
	DateTimeUnderscored DateTimeFormat = "date_time_underscored"
	DateTimeDotted      DateTimeFormat = "date_time_dotted"
	DateTimeDashed      DateTimeFormat = "date_time_dashed"

	ReverseDateTimeTogether    DateTimeFormat = "reverse_date_time_together"
	ReverseDateTimeSpaced      DateTimeFormat = "reverse_date_time_spaced"
	ReverseDateTimeUnderscored DateTimeFormat = "reverse_date_time_underscored"
	ReverseDateTimeDotted      DateTimeFormat = "reverse_date_time_dotted"
	ReverseDateTimeDashed      DateTimeFormat = "reverse_date_time_dashed"

	// MillisSinceEpoch renders the wall clock, read as UTC, as Unix
	// milliseconds and ignores the date and time formats.
	MillisSinceEpoch DateTimeFormat = "millis_since_epoch"
)

// --- Go layouts per enum value ---

var dateLayouts = map[DateFormat]string{
	DateYYYYMMDDTogether: "20060102", DateYYYYMMDDSpaced: "2006 01 02", DateYYYYMMDDUnderscored: "2006_01_02",
	DateYYYYMMDDDotted: "2006.01.02", DateYYYYMMDDDashed: "2006-01-02",

	DateYYMMDDTogether: "060102", DateYYMMDDSpaced: "06 01 02", DateYYMMDDUnderscored: "06_01_02",
	DateYYMMDDDotted: "06.01.02", DateYYMMDDDashed: "06-01-02",

	DateMMDDYYYYTogether: "01022006", DateMMDDYYYYSpaced: "01 02 2006", DateMMDDYYYYUnderscored: "01_02_2006",
	DateMMDDYYYYDotted: "01.02.2006", DateMMDDYYYYDashed: "01-02-2006",

	DateMMDDYYTogether: "010206", DateMMDDYYSpaced: "01 02 06", DateMMDDYYUnderscored: "01_02_06",
	DateMMDDYYDotted: "01.02.06", DateMMDDYYDashed: "01-02-06",

	DateDDMMYYYYTogether: "02012006", DateDDMMYYYYSpaced: "02 01 2006", DateDDMMYYYYUnderscored: "02_01_2006",
	DateDDMMYYYYDotted: "02.01.2006", DateDDMMYYYYDashed: "02-01-2006",

	DateDDMMYYTogether: "020106", DateDDMMYYSpaced: "02 01 06", DateDDMMYYUnderscored: "02_01_06",
	DateDDMMYYDotted: "02.01.06", DateDDMMYYDashed: "02-01-06",
}

var timeLayouts = map[TimeFormat]string{
	TimeHHMMSS24Together: "150405", TimeHHMMSS24Spaced: "15 04 05", TimeHHMMSS24Underscored: "15_04_05",
	TimeHHMMSS24Dotted: "15.04.05", TimeHHMMSS24Dashed: "15-04-05",

	TimeHHMM24Together: "1504", TimeHHMM24Spaced: "15 04", TimeHHMM24Underscored: "15_04",
	TimeHHMM24Dotted: "15.04", TimeHHMM24Dashed: "15-04",

	TimeHHMMSSAmPmTogether: "030405PM", TimeHHMMSSAmPmSpaced: "03 04 05 PM", TimeHHMMSSAmPmUnderscored: "03_04_05_PM",
	TimeHHMMSSAmPmDotted: "03.04.05.PM", TimeHHMMSSAmPmDashed: "03-04-05-PM",

	TimeHHMMAmPmTogether: "0304PM", TimeHHMMAmPmSpaced: "03 04 PM", TimeHHMMAmPmUnderscored: "03_04_PM",
	TimeHHMMAmPmDotted: "03.04.PM", TimeHHMMAmPmDashed: "03-04-PM",
}

type combinator struct {
	reverse bool
	sep     string
}

var combinators = map[DateTimeFormat]combinator{
	DateTimeTogether:           {false, ""},
	DateTimeSpaced:             {false, " "},
	DateTimeUnderscored:        {false, "_"},
	DateTimeDotted:             {false, "."},
	DateTimeDashed:             {false, "-"},
	ReverseDateTimeTogether:    {true, ""},
	ReverseDateTimeSpaced:      {true, " "},
	ReverseDateTimeUnderscored: {true, "_"},
	ReverseDateTimeDotted:      {true, "."},
	ReverseDateTimeDashed:      {true, "-"},
}

func (f DateFormat) String() string     { return string(f) }
func (f TimeFormat) String() string     { return string(f) }
func (f DateTimeFormat) String() string { return string(f) }

// IsAmPm reports whether f renders a 12-hour clock with an AM/PM marker.
func (f TimeFormat) IsAmPm() bool {
	return strings.Contains(string(f), "am_pm")
}

// FormatDate renders the date part of t. A nil t or DateNone yields "".
func FormatDate(t *time.Time, f DateFormat) string {
	layout, ok := dateLayouts[f]
	if t == nil || !ok {
		return ""
	}
	return t.Format(layout)
}

// FormatTime renders the time part of t. A nil t or TimeNone yields "".
func FormatTime(t *time.Time, f TimeFormat) string {
	layout, ok := timeLayouts[f]
	if t == nil || !ok {
		return ""
	}
	return t.Format(layout)
}

// FormatDateTime combines the date and time fragments of t according to
// dtf. When only one fragment is non-empty it is returned alone.
func FormatDateTime(t *time.Time, df DateFormat, tf TimeFormat, dtf DateTimeFormat) string {
	if t == nil {
		return ""
	}
	if dtf == MillisSinceEpoch {
		return strconv.FormatInt(naive(*t).UnixMilli(), 10)
	}

	date := FormatDate(t, df)
	clock := FormatTime(t, tf)
	switch {
	case date == "" && clock == "":
		return ""
	case date == "":
		return clock
	case clock == "":
		return date
	}

	c, ok := combinators[dtf]
	if !ok {
		return ""
	}
	if c.reverse {
		return clock + c.sep + date
	}
	return date + c.sep + clock
}

// --- Parsing enum values from user input ---

// ParseDateFormat validates s as a DateFormat name.
func ParseDateFormat(s string) (DateFormat, error) {
	f := DateFormat(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dateLayouts[f]; ok || f == DateNone {
		return f, nil
	}
	return "", errors.Errorf("invalid date format %q", s)
}

// ParseTimeFormat validates s as a TimeFormat name.
func ParseTimeFormat(s string) (TimeFormat, error) {
	f := TimeFormat(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := timeLayouts[f]; ok || f == TimeNone {
		return f, nil
	}
	return "", errors.Errorf("invalid time format %q", s)
}

// ParseDateTimeFormat validates s as a DateTimeFormat name.
func ParseDateTimeFormat(s string) (DateTimeFormat, error) {
	f := DateTimeFormat(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := combinators[f]; ok || f == MillisSinceEpoch {
		return f, nil
	}
	return "", errors.Errorf("invalid date-time format %q", s)
}
