package metadata

import "path/filepath"

// CatchAllHandler matches every extension and returns no metadata.
type CatchAllHandler struct{}

func (CatchAllHandler) Name() string                      { return "catch-all" }
func (CatchAllHandler) CanHandle(string) bool             { return true }
func (CatchAllHandler) Extract(string) (*Metadata, error) { return nil, nil }

// Chain dispatches a file to the first handler that accepts its
// extension.
type Chain struct {
	handlers []Handler
}

// NewChain returns a chain trying handlers in order. A CatchAllHandler is
// appended when the list does not already end with one, so every
// extension finds a handler.
func NewChain(handlers ...Handler) *Chain {
	if n := len(handlers); n == 0 {
		handlers = append(handlers, CatchAllHandler{})
	} else if _, ok := handlers[n-1].(CatchAllHandler); !ok {
		handlers = append(handlers, CatchAllHandler{})
	}
	return &Chain{handlers: handlers}
}

// Handlers returns the handlers in dispatch order.
func (c *Chain) Handlers() []Handler { return c.handlers }

// HandlerFor returns the first handler accepting ext.
func (c *Chain) HandlerFor(ext string) Handler {
	for _, h := range c.handlers {
		if h.CanHandle(ext) {
			return h
		}
	}
	return CatchAllHandler{}
}

// Extract runs the handler matching the extension of path.
func (c *Chain) Extract(path string) (*Metadata, error) {
	return c.HandlerFor(filepath.Ext(path)).Extract(path)
}

// Video containers share tag names across their directories.
var (
	videoDimTags  = []string{TagWidth}
	videoHTags    = []string{TagHeight}
	videoDateTags = []string{TagCreationTime}
)

// DefaultChain returns the built-in dispatch table.
func DefaultChain(dec Decoder, log Logger) *Chain {
	image := func(name string, base DirectoryType, exts ...string) Handler {
		return NewImageHandler(name, base, dec, log, exts...)
	}
	video := func(name string, dirs []DirectoryType, exts ...string) Handler {
		return NewVideoHandler(name, VideoFormat{
			Directories: dirs,
			WidthTags:   videoDimTags,
			HeightTags:  videoHTags,
			DateTags:    videoDateTags,
		}, dec, log, exts...)
	}
	audio := func(name string, dirs []DirectoryType, exts ...string) Handler {
		return NewAudioHandler(name, dirs, dec, log, exts...)
	}

	return NewChain(
		image("jpeg", DirJPEG, "jpg", "jpeg", "jpe"),
		image("png", DirPNG, "png"),
		image("gif", DirGIF, "gif"),
		image("bmp", DirBMP, "bmp"),
		image("webp", DirWebP, "webp"),
		image("tiff", DirTIFF, "tif", "tiff"),
		image("heif", DirHEIF, "heic", "heif", "avif"),
		image("raw", DirRaw, "cr2", "nef", "arw", "dng", "orf", "rw2"),
		image("psd", DirPSD, "psd", "psb"),
		image("ico", DirICO, "ico"),
		image("pcx", DirPCX, "pcx"),
		image("eps", DirEPS, "eps", "epsf", "epsi"),
		video("mp4", []DirectoryType{DirMP4Video, DirQuickTime, DirMP4Media, DirFFprobe}, "mp4", "m4v"),
		video("quicktime", []DirectoryType{DirMP4Video, DirQuickTime, DirMP4Media, DirFFprobe}, "mov", "qt"),
		video("avi", []DirectoryType{DirAVI, DirFFprobe}, "avi"),
		video("matroska", []DirectoryType{DirFFprobe}, "mkv", "webm"),
		audio("mp3", []DirectoryType{DirAudioTags, DirMP3Stream}, "mp3"),
		audio("audio", []DirectoryType{DirAudioTags}, "m4a", "flac", "ogg"),
		audio("wav", []DirectoryType{DirWAV, DirAudioTags}, "wav"),
		CatchAllHandler{},
	)
}
