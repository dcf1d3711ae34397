package naming

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/datetime"
)

// DateSource selects which timestamp DateTime renders.
type DateSource string

const (
	SourceCreation        DateSource = "fs_creation"
	SourceModification    DateSource = "fs_modification"
	SourceContentCreation DateSource = "content_creation"
	SourceCurrent         DateSource = "current"
	SourceCustom          DateSource = "custom"
)

var dateSources = []DateSource{
	SourceCreation, SourceModification, SourceContentCreation, SourceCurrent, SourceCustom,
}

// ParseDateSource validates s as a DateSource name.
func ParseDateSource(s string) (DateSource, error) {
	v := DateSource(strings.ToLower(strings.TrimSpace(s)))
	for _, src := range dateSources {
		if v == src {
			return v, nil
		}
	}
	return "", errors.Errorf("invalid date source %q", s)
}

// DateTime adds a formatted timestamp to the name.
type DateTime struct {
	noPrepare
	DateFormat     datetime.DateFormat
	TimeFormat     datetime.TimeFormat
	DateTimeFormat datetime.DateTimeFormat
	Source         DateSource
	Position       Position // begin, end or replace
	Separator      string   // between timestamp and name
	UppercaseAmPm  bool

	// Custom is the value for SourceCustom and for UseCustomFallback.
	Custom *time.Time
	// UseFallback fills a missing timestamp with Custom (when
	// UseCustomFallback) or the earliest of the record's timestamps.
	UseFallback       bool
	UseCustomFallback bool

	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

func (t *DateTime) Apply(r *FileRecord) {
	if t.DateFormat == datetime.DateNone && t.TimeFormat == datetime.TimeNone &&
		t.DateTimeFormat != datetime.MillisSinceEpoch {
		return
	}

	ts := t.pick(r)
	if ts == nil && t.UseFallback {
		if t.UseCustomFallback {
			ts = t.Custom
		} else {
			ts = datetime.FindMinOrNil(r.FsCreationDate, r.FsModificationDate, r.ContentCreationDate())
		}
	}
	if ts == nil {
		return
	}

	text := datetime.FormatDateTime(ts, t.DateFormat, t.TimeFormat, t.DateTimeFormat)
	if text == "" {
		return
	}
	if t.TimeFormat.IsAmPm() {
		if t.UppercaseAmPm {
			text = strings.ToUpper(text)
		} else {
			text = strings.ToLower(text)
		}
	}
	r.NewName = place(t.Position, r.Name, text, t.Separator)
}

func (t *DateTime) pick(r *FileRecord) *time.Time {
	switch t.Source {
	case SourceModification:
		return r.FsModificationDate
	case SourceContentCreation:
		return r.ContentCreationDate()
	case SourceCurrent:
		now := time.Now
		if t.Now != nil {
			now = t.Now
		}
		n := now()
		n = time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
		return &n
	case SourceCustom:
		return t.Custom
	default:
		return r.FsCreationDate
	}
}
