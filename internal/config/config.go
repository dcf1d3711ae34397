// Package config holds runtime configuration: defaults, the optional config
// file, CLI flags, and validation.
package config

import (
	"strings"

	"github.com/pkg/errors"
)

// --- Enum types for validated string fields ---

// Mode selects the naming transform applied to every file.
type Mode string

const (
	ModeAddText       Mode = "add_text"
	ModeRemoveText    Mode = "remove_text"
	ModeReplaceText   Mode = "replace_text"
	ModeChangeCase    Mode = "change_case"
	ModeTruncate      Mode = "truncate"
	ModeSequence      Mode = "sequence"
	ModeParentFolders Mode = "parent_folders"
	ModeDateTime      Mode = "datetime"
	ModeDimensions    Mode = "dimensions"
	ModeExtension     Mode = "extension"
)

// Modes lists every Mode in help order.
var Modes = []Mode{
	ModeAddText, ModeRemoveText, ModeReplaceText, ModeChangeCase, ModeTruncate,
	ModeSequence, ModeParentFolders, ModeDateTime, ModeDimensions, ModeExtension,
}

// OutputFormat is how the plan is printed.
type OutputFormat string

const (
	OutputTable OutputFormat = "table" // Column-aligned text (default).
	OutputYAML  OutputFormat = "yaml"
	OutputJSON  OutputFormat = "json"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadFile], then [FromContext], and validated once before the
// pipeline starts. Keys in the config file use the mapstructure names.
type Config struct {
	// Inputs (set from positional args).
	Paths     []string `mapstructure:"paths"`
	Recursive bool     `mapstructure:"recursive"`

	// Processing.
	Workers int          `mapstructure:"workers"` // 0 means one per CPU.
	Output  OutputFormat `mapstructure:"output"`
	Mode    Mode         `mapstructure:"mode"`

	// Shared transform options.
	Text      string `mapstructure:"text"`
	Position  string `mapstructure:"position"`
	Separator string `mapstructure:"separator"`

	// replace_text
	Replacement string `mapstructure:"replacement"`

	// change_case
	Case       string `mapstructure:"case"`
	Capitalize bool   `mapstructure:"capitalize"`

	// truncate
	Count     int  `mapstructure:"count"`
	TrimSpace bool `mapstructure:"truncate"` // Trim white space instead of cutting Count symbols.

	// sequence
	Start   int    `mapstructure:"start"`
	Step    int    `mapstructure:"step"`
	Padding int    `mapstructure:"padding"`
	Sort    string `mapstructure:"sort"`

	// parent_folders
	Parents int `mapstructure:"parents"`

	// datetime
	DateFormat     string `mapstructure:"date_format"`
	TimeFormat     string `mapstructure:"time_format"`
	DateTimeFormat string `mapstructure:"datetime_format"`
	Source         string `mapstructure:"source"`
	CustomDate     string `mapstructure:"custom_date"` // Any layout the date parser accepts.
	Fallback       bool   `mapstructure:"fallback"`
	FallbackCustom bool   `mapstructure:"fallback_custom"`
	AmPmUpper      bool   `mapstructure:"ampm_upper"`

	// dimensions
	Left               string `mapstructure:"left"`
	Right              string `mapstructure:"right"`
	DimensionSeparator string `mapstructure:"dimension_separator"`

	// extension
	Extension string `mapstructure:"extension"`

	// Display and logging.
	Verbose     bool      `mapstructure:"verbose"`
	ColorMode   ColorMode `mapstructure:"color"`
	LogFile     string    `mapstructure:"log"`
	MetricsFile string    `mapstructure:"metrics_file"`
}

// DefaultConfig returns the base Config before the config file and CLI
// flags are applied.
func DefaultConfig() Config {
	return Config{
		Output:             OutputTable,
		Mode:               ModeAddText,
		Position:           "begin",
		Separator:          "_",
		Case:               "camel",
		Start:              1,
		Step:               1,
		Sort:               "name",
		Parents:            1,
		DateFormat:         "yyyy_mm_dd_dashed",
		TimeFormat:         "do_not_use",
		DateTimeFormat:     "date_time_underscored",
		Source:             "fs_creation",
		Left:               "width",
		Right:              "height",
		DimensionSeparator: "x",
		ColorMode:          ColorAuto,
	}
}

// Validate checks enum fields and the options of the selected mode. It is
// the only fail-fast check; everything after it reports per-file errors.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputYAML, OutputJSON:
		// valid
	default:
		return errors.New("invalid output (use 'table', 'yaml' or 'json')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if len(c.Paths) == 0 {
		return errors.New("need at least one input path")
	}

	_, err := c.Transform()
	return err
}

// ParseMode validates s as a Mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Modes {
		if m == v {
			return m, nil
		}
	}
	return "", errors.New("invalid mode " + s)
}
