// Package check provides system diagnostics (the check command): ffprobe
// availability and the decoders and metadata handler behind every
// supported extension.
package check

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/decode"
	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/probe"
)

// ErrFFprobeNotFound is returned by FFprobeVersion when the binary is not
// on PATH.
var ErrFFprobeNotFound = errors.New("ffprobe not found on PATH")

// versionTimeout bounds the ffprobe -version call.
const versionTimeout = 5 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Support describes how files with one extension are read.
type Support struct {
	Ext     string
	Handler string
	Sources []string
}

// Readable reports whether at least one decoder serves the extension.
func (s Support) Readable() bool { return len(s.Sources) > 0 }

// Supported lists every extension the router knows with the handler the
// chain dispatches it to, sorted by extension.
func Supported(router *decode.Router, chain *metadata.Chain) []Support {
	exts := router.Known()
	out := make([]Support, 0, len(exts))
	for _, ext := range exts {
		out = append(out, Support{
			Ext:     ext,
			Handler: chain.HandlerFor(ext).Name(),
			Sources: router.Sources(ext),
		})
	}
	return out
}

// RunCheck prints ffprobe availability and the per-extension decoder
// table. It is informational only and does not stop on failure.
func RunCheck(log Logger, prober *probe.Prober, router *decode.Router, chain *metadata.Chain) {
	log.Info("=== System Check ===")

	checkFFprobe(log, prober)
	checkFormats(log, Supported(router, chain))
}

func checkFFprobe(log Logger, prober *probe.Prober) {
	path, ok := prober.Available()
	if !ok {
		log.Warn("ffprobe not found: Matroska and WebM files will have no metadata")
		return
	}
	version, err := FFprobeVersion(context.Background(), prober)
	if err != nil {
		log.Warn("ffprobe found at %s but -version failed: %v", path, err)
		return
	}
	log.Success("ffprobe: %s (%s)", version, path)
}

func checkFormats(log Logger, supported []Support) {
	log.Info("Supported extensions:")
	var missing []string
	for _, s := range supported {
		if !s.Readable() {
			missing = append(missing, s.Ext)
			continue
		}
		log.Info("  %-5s %-10s %s", s.Ext, s.Handler, strings.Join(s.Sources, ", "))
	}
	if len(missing) > 0 {
		log.Error("No decoder for: %s", strings.Join(missing, ", "))
	}
}

// FFprobeVersion runs `ffprobe -version` and returns its first line.
func FFprobeVersion(ctx context.Context, prober *probe.Prober) (string, error) {
	path, ok := prober.Available()
	if !ok {
		return "", ErrFFprobeNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", errors.Wrap(err, "ffprobe -version")
	}
	return firstLine(string(out)), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
