// Package logging provides the leveled console logger used by every
// command, backed by zerolog. Console lines are human readable; the
// optional log file receives the same events as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/term"
)

// levelSuccess is written as the level field of Success events. zerolog
// has no such level, so these events are sent without one.
const levelSuccess = "success"

// Logger provides leveled, optionally colored logging with an optional
// JSON file sink. It is safe for concurrent use.
type Logger struct {
	mu   sync.Mutex
	zl   zerolog.Logger
	file *os.File
}

// NewLogger configures terminal colors from cfg and optionally opens
// cfg.LogFile in append mode. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
	}

	var sink io.Writer
	if file != nil {
		sink = file
	}
	l := New(os.Stdout, os.Stderr, sink, term.Enabled(), cfg.Verbose)
	l.file = file
	return l, nil
}

// New builds a Logger writing info and below to out, errors to errOut,
// and every event as JSON to sink when sink is non-nil.
func New(out, errOut io.Writer, sink io.Writer, color, verbose bool) *Logger {
	console := splitWriter{
		out: consoleWriter(out, color),
		err: consoleWriter(errOut, color),
	}

	var w io.Writer = console
	if sink != nil {
		w = zerolog.MultiLevelWriter(console, sink)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.SyncWriter(w)).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func consoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     !color,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel(color),
	}
}

// formatLevel renders "[INFO]" style tags in the level's color.
func formatLevel(color bool) zerolog.Formatter {
	return func(i interface{}) string {
		name, _ := i.(string)
		tag := "[" + strings.ToUpper(name) + "]"
		if !color {
			return tag
		}
		var c string
		switch name {
		case levelSuccess:
			c = term.Green
		case zerolog.LevelDebugValue:
			c = term.Cyan
		case zerolog.LevelWarnValue:
			c = term.Yellow
		case zerolog.LevelErrorValue:
			c = term.Red
		default:
			c = term.Blue
		}
		return c + tag + term.NC
	}
}

// splitWriter sends error events to err and everything else to out.
type splitWriter struct {
	out, err io.Writer
}

func (s splitWriter) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s splitWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l >= zerolog.ErrorLevel && l < zerolog.NoLevel {
		return s.err.Write(p)
	}
	return s.out.Write(p)
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs an INFO-priority event tagged SUCCESS.
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.WithLevel(zerolog.NoLevel).Str(zerolog.LevelFieldName, levelSuccess).Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}
