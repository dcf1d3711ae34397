package decode

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/probe"
)

// Logger is the logging surface the router needs.
type Logger interface {
	Debug(string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Router implements metadata.Decoder by running every source registered
// for a file's extension.
type Router struct {
	fs     afero.Fs
	prober *probe.Prober
	log    Logger
	table  map[string][]source
}

// Option configures a Router.
type Option func(*Router)

// WithProber adds ffprobe as an extra source for video containers. It
// needs real paths, so only use it with an OS-backed filesystem.
func WithProber(p *probe.Prober) Option {
	return func(rt *Router) { rt.prober = p }
}

// WithLogger reports per-source failures at debug level.
func WithLogger(log Logger) Option {
	return func(rt *Router) {
		if log != nil {
			rt.log = log
		}
	}
}

// NewRouter returns a Router reading files from fs.
func NewRouter(fs afero.Fs, opts ...Option) *Router {
	rt := &Router{fs: fs, log: nopLogger{}}
	for _, o := range opts {
		o(rt)
	}
	rt.table = rt.buildTable()
	return rt
}

func (rt *Router) buildTable() map[string][]source {
	var (
		jpegExif = newSource("exif", exifSource(jpegParser))
		pngExif  = newSource("exif", exifSource(pngParser))
		tiffExif = newSource("exif", exifSource(tiffParser))
		heicExif = newSource("exif", exifSource(heicParser))
		anyExif  = newSource("exif", exifSource(nil))
		rawExif  = newSource("raw-exif", rawSource)
		dims     = func(t metadata.DirectoryType) source {
			return newSource("image-header", dimensionSource(t))
		}
		header = func(t metadata.DirectoryType, size sizeFunc) source {
			return newSource(string(t)+"-header", headerSource(t, size))
		}
		boxes  = newSource("mp4-boxes", mp4Source)
		avi    = newSource("avi-header", aviSource)
		tags   = newSource("audio-tags", tagSource)
		wavInf = newSource("wav-info", wavSource)
		mp3    = newSource("mp3-stream", mp3StreamSource)
	)

	video := func(s ...source) []source {
		if rt.prober != nil {
			s = append(s, newSource("ffprobe", ffprobeSource(rt.prober)))
		}
		return s
	}

	t := map[string][]source{}
	add := func(sources []source, exts ...string) {
		for _, e := range exts {
			t[e] = sources
		}
	}
	add([]source{dims(metadata.DirJPEG), jpegExif}, "jpg", "jpeg", "jpe")
	add([]source{dims(metadata.DirPNG), pngExif}, "png")
	add([]source{dims(metadata.DirGIF)}, "gif")
	add([]source{dims(metadata.DirBMP)}, "bmp")
	add([]source{dims(metadata.DirWebP), anyExif}, "webp")
	add([]source{dims(metadata.DirTIFF), tiffExif}, "tif", "tiff")
	add([]source{heicExif}, "heic", "heif", "avif")
	add([]source{rawExif}, "cr2", "nef", "arw", "dng", "orf", "rw2")
	add([]source{header(metadata.DirPSD, psdSize), anyExif}, "psd", "psb")
	add([]source{header(metadata.DirICO, icoSize)}, "ico")
	add([]source{header(metadata.DirPCX, pcxSize)}, "pcx")
	add([]source{header(metadata.DirEPS, epsSize)}, "eps", "epsf", "epsi")
	add(video(boxes), "mp4", "m4v", "mov", "qt")
	add(video(avi), "avi")
	add(video(), "mkv", "webm")
	add([]source{tags, mp3}, "mp3")
	add([]source{tags}, "m4a", "flac", "ogg")
	add([]source{wavInf}, "wav")
	return t
}

// Extensions returns the supported extensions, sorted.
func (rt *Router) Extensions() []string {
	out := make([]string, 0, len(rt.table))
	for e, s := range rt.table {
		if len(s) > 0 {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}

// Known returns every extension the router has an entry for, including
// those with no usable source in this configuration, sorted.
func (rt *Router) Known() []string {
	out := make([]string, 0, len(rt.table))
	for e := range rt.table {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Sources names the decoders registered for ext, in run order.
func (rt *Router) Sources(ext string) []string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	var names []string
	for _, s := range rt.table[ext] {
		names = append(names, s.name)
	}
	return names
}

// Decode opens path once and runs every registered source on it. Results
// of the sources that succeed are merged in registration order; the
// first error is returned only when no source produced anything.
func (rt *Router) Decode(path string) (metadata.Directories, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	sources := rt.table[ext]
	if len(sources) == 0 {
		return nil, errors.Wrapf(ErrUnsupported, "extension %q", ext)
	}

	f, err := rt.fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat")
	}

	var (
		dirs     metadata.Directories
		firstErr error
	)
	for _, s := range sources {
		if err := rewind(f); err != nil {
			return nil, err
		}
		got, err := s.run(f, info.Size(), path)
		if err != nil {
			rt.log.Debug("%s: %s: %v", filepath.Base(path), s.name, err)
			if firstErr == nil {
				firstErr = errors.Wrap(err, s.name)
			}
			continue
		}
		dirs = append(dirs, got...)
	}

	if len(dirs) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return dirs, nil
}
