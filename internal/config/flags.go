package config

// This file declares the CLI flags and copies the ones the user actually
// set into Config. Flags left at their default never override values from
// the config file.

import (
	"github.com/urfave/cli/v2"
)

// Flag names shared between the flag definitions and FromContext.
const (
	FlagConfig      = "config"
	FlagVerbose     = "verbose"
	FlagColor       = "color"
	FlagNoColor     = "no-color"
	FlagLog         = "log"
	FlagWorkers     = "workers"
	FlagMetricsFile = "metrics-file"

	FlagRecursive = "recursive"
	FlagOutput    = "output"
	FlagMode      = "mode"
)

// GlobalFlags apply to every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Usage: "Config file (default: ./renamer.yaml if present)"},
		&cli.BoolFlag{Name: FlagVerbose, Aliases: []string{"v"}, Usage: "Verbose output"},
		&cli.BoolFlag{Name: FlagColor, Usage: "Force colored logs"},
		&cli.BoolFlag{Name: FlagNoColor, Usage: "Disable colored logs"},
		&cli.StringFlag{Name: FlagLog, Aliases: []string{"l"}, Usage: "Append JSON logs to `FILE`"},
		&cli.IntFlag{Name: FlagWorkers, Aliases: []string{"w"}, Usage: "Parallel workers (default: one per CPU)"},
		&cli.StringFlag{Name: FlagMetricsFile, Usage: "Write Prometheus metrics to `FILE` on exit"},
	}
}

// PlanFlags are the flags of the plan command.
func PlanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: FlagRecursive, Aliases: []string{"r"}, Usage: "Descend into directories"},
		&cli.StringFlag{Name: FlagOutput, Aliases: []string{"o"}, Usage: "Plan output: table | yaml | json"},
		&cli.StringFlag{Name: FlagMode, Aliases: []string{"m"}, Usage: "Naming mode: add_text | remove_text | replace_text | change_case | truncate | sequence | parent_folders | datetime | dimensions | extension"},

		&cli.StringFlag{Name: "text", Usage: "Text to add, remove or replace"},
		&cli.StringFlag{Name: "position", Usage: "begin | end | everywhere | replace (depends on mode)"},
		&cli.StringFlag{Name: "replacement", Usage: "Replacement text (replace_text)"},
		&cli.StringFlag{Name: "separator", Usage: "Separator between the fragment and the name"},
		&cli.StringFlag{Name: "case", Usage: "camel | pascal | snake | screaming | kebab | upper | lower | title"},
		&cli.BoolFlag{Name: "capitalize", Usage: "Upper-case the first letter (change_case)"},
		&cli.IntFlag{Name: "count", Usage: "Symbols to remove (truncate)"},
		&cli.BoolFlag{Name: "truncate", Usage: "Trim surrounding white space instead of removing symbols"},
		&cli.IntFlag{Name: "start", Usage: "First number (sequence)"},
		&cli.IntFlag{Name: "step", Usage: "Increment (sequence)"},
		&cli.IntFlag{Name: "padding", Usage: "Zero-pad numbers to this width (sequence)"},
		&cli.StringFlag{Name: "sort", Usage: "name | path | size | fs_creation | fs_modification | content_creation | width | height"},
		&cli.IntFlag{Name: "parents", Usage: "Number of parent folders (parent_folders)"},
		&cli.StringFlag{Name: "date-format", Usage: "Date format, e.g. yyyy_mm_dd_dashed or do_not_use"},
		&cli.StringFlag{Name: "time-format", Usage: "Time format, e.g. hh_mm_ss_24_together or do_not_use"},
		&cli.StringFlag{Name: "datetime-format", Usage: "How date and time are joined, e.g. date_time_underscored"},
		&cli.StringFlag{Name: "source", Usage: "fs_creation | fs_modification | content_creation | current | custom"},
		&cli.StringFlag{Name: "custom-date", Usage: "Date for the custom source or fallback"},
		&cli.BoolFlag{Name: "fallback", Usage: "Use the earliest known date when the source is missing"},
		&cli.BoolFlag{Name: "fallback-custom", Usage: "Use --custom-date when the source is missing"},
		&cli.BoolFlag{Name: "ampm-upper", Usage: "Upper-case AM/PM markers"},
		&cli.StringFlag{Name: "left", Usage: "Left side: width | height | do_not_use"},
		&cli.StringFlag{Name: "right", Usage: "Right side: width | height | do_not_use"},
		&cli.StringFlag{Name: "dimension-separator", Usage: "Between the two sides (default: x)"},
		&cli.StringFlag{Name: "extension", Usage: "New extension; empty removes it"},
	}
}

// FromContext copies every flag set on the command line into cfg and takes
// the positional arguments as Paths when there are any.
func FromContext(c *cli.Context, cfg *Config) error {
	setString(c, FlagLog, &cfg.LogFile)
	setString(c, FlagMetricsFile, &cfg.MetricsFile)
	setInt(c, FlagWorkers, &cfg.Workers)
	setBool(c, FlagVerbose, &cfg.Verbose)
	if c.Bool(FlagNoColor) {
		cfg.ColorMode = ColorNever
	} else if c.Bool(FlagColor) {
		cfg.ColorMode = ColorAlways
	}

	setBool(c, FlagRecursive, &cfg.Recursive)
	if c.IsSet(FlagOutput) {
		cfg.Output = OutputFormat(c.String(FlagOutput))
	}
	if c.IsSet(FlagMode) {
		m, err := ParseMode(c.String(FlagMode))
		if err != nil {
			return err
		}
		cfg.Mode = m
	}

	setString(c, "text", &cfg.Text)
	setString(c, "position", &cfg.Position)
	setString(c, "replacement", &cfg.Replacement)
	setString(c, "separator", &cfg.Separator)
	setString(c, "case", &cfg.Case)
	setBool(c, "capitalize", &cfg.Capitalize)
	setInt(c, "count", &cfg.Count)
	setBool(c, "truncate", &cfg.TrimSpace)
	setInt(c, "start", &cfg.Start)
	setInt(c, "step", &cfg.Step)
	setInt(c, "padding", &cfg.Padding)
	setString(c, "sort", &cfg.Sort)
	setInt(c, "parents", &cfg.Parents)
	setString(c, "date-format", &cfg.DateFormat)
	setString(c, "time-format", &cfg.TimeFormat)
	setString(c, "datetime-format", &cfg.DateTimeFormat)
	setString(c, "source", &cfg.Source)
	setString(c, "custom-date", &cfg.CustomDate)
	setBool(c, "fallback", &cfg.Fallback)
	setBool(c, "fallback-custom", &cfg.FallbackCustom)
	setBool(c, "ampm-upper", &cfg.AmPmUpper)
	setString(c, "left", &cfg.Left)
	setString(c, "right", &cfg.Right)
	setString(c, "dimension-separator", &cfg.DimensionSeparator)
	setString(c, "extension", &cfg.Extension)

	if c.NArg() > 0 {
		cfg.Paths = c.Args().Slice()
	}
	return nil
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setInt(c *cli.Context, name string, dst *int) {
	if c.IsSet(name) {
		*dst = c.Int(name)
	}
}

func setBool(c *cli.Context, name string, dst *bool) {
	if c.IsSet(name) {
		*dst = c.Bool(name)
	}
}
