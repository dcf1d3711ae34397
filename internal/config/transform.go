package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/datetime"
	"github.com/backmassage/renamer/internal/naming"
)

// Transform builds the naming transform selected by Mode from the mode
// options. Unknown enum values are reported with the offending option.
func (c *Config) Transform() (naming.Transform, error) {
	switch c.Mode {
	case ModeAddText:
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd)
		if err != nil {
			return nil, err
		}
		return &naming.AddText{Text: c.Text, Position: pos}, nil

	case ModeRemoveText:
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd)
		if err != nil {
			return nil, err
		}
		return &naming.RemoveText{Text: c.Text, Position: pos}, nil

	case ModeReplaceText:
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd, naming.PositionEverywhere)
		if err != nil {
			return nil, err
		}
		return &naming.ReplaceText{Text: c.Text, Replacement: c.Replacement, Position: pos}, nil

	case ModeChangeCase:
		tc, err := naming.ParseTextCase(c.Case)
		if err != nil {
			return nil, err
		}
		return &naming.ChangeCase{Case: tc, Capitalize: c.Capitalize}, nil

	case ModeTruncate:
		if c.TrimSpace {
			return &naming.Truncate{Position: naming.PositionTrim}, nil
		}
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd)
		if err != nil {
			return nil, err
		}
		if c.Count < 0 {
			return nil, errors.New("count must not be negative")
		}
		return &naming.Truncate{Count: c.Count, Position: pos}, nil

	case ModeSequence:
		src, err := naming.ParseSortSource(c.Sort)
		if err != nil {
			return nil, err
		}
		if c.Padding < 0 {
			return nil, errors.New("padding must not be negative")
		}
		return &naming.Sequence{Sort: src, Start: c.Start, Step: c.Step, Padding: c.Padding}, nil

	case ModeParentFolders:
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd)
		if err != nil {
			return nil, err
		}
		if c.Parents < 1 {
			return nil, errors.New("parents must be at least 1")
		}
		return &naming.ParentFolders{Count: c.Parents, Position: pos, Separator: c.Separator}, nil

	case ModeDateTime:
		return c.dateTimeTransform()

	case ModeDimensions:
		pos, err := c.position(naming.PositionBegin, naming.PositionEnd, naming.PositionReplace)
		if err != nil {
			return nil, err
		}
		left, err := naming.ParseDimensionSide(c.Left)
		if err != nil {
			return nil, err
		}
		right, err := naming.ParseDimensionSide(c.Right)
		if err != nil {
			return nil, err
		}
		return &naming.ImageDimensions{
			Left:               left,
			Right:              right,
			Position:           pos,
			DimensionSeparator: c.DimensionSeparator,
			NameSeparator:      c.Separator,
		}, nil

	case ModeExtension:
		return &naming.ExtensionChange{Extension: c.Extension}, nil
	}
	return nil, errors.Errorf("invalid mode %q", c.Mode)
}

func (c *Config) dateTimeTransform() (naming.Transform, error) {
	pos, err := c.position(naming.PositionBegin, naming.PositionEnd, naming.PositionReplace)
	if err != nil {
		return nil, err
	}
	df, err := datetime.ParseDateFormat(c.DateFormat)
	if err != nil {
		return nil, err
	}
	tf, err := datetime.ParseTimeFormat(c.TimeFormat)
	if err != nil {
		return nil, err
	}
	dtf, err := datetime.ParseDateTimeFormat(c.DateTimeFormat)
	if err != nil {
		return nil, err
	}
	src, err := naming.ParseDateSource(c.Source)
	if err != nil {
		return nil, err
	}

	t := &naming.DateTime{
		DateFormat:        df,
		TimeFormat:        tf,
		DateTimeFormat:    dtf,
		Source:            src,
		Position:          pos,
		Separator:         c.Separator,
		UppercaseAmPm:     c.AmPmUpper,
		UseFallback:       c.Fallback || c.FallbackCustom,
		UseCustomFallback: c.FallbackCustom,
	}
	if src == naming.SourceCustom || c.FallbackCustom {
		custom, err := parseCustomDate(c.CustomDate)
		if err != nil {
			return nil, err
		}
		t.Custom = &custom
	}
	return t, nil
}

func parseCustomDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("custom date is required for the custom source or custom fallback")
	}
	ts, ok := datetime.NewParser(nil).Parse(s)
	if !ok {
		return time.Time{}, errors.Errorf("invalid custom date %q", s)
	}
	return ts, nil
}

func (c *Config) position(allowed ...naming.Position) (naming.Position, error) {
	pos, err := naming.ParsePosition(c.Position, allowed...)
	return pos, errors.Wrapf(err, "mode %s", c.Mode)
}
