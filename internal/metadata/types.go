package metadata

import (
	"strconv"
	"strings"
	"time"
)

// Metadata holds the normalized values found for one file. Nil pointers
// and empty strings mean the value was not found.
type Metadata struct {
	CreationDate *time.Time
	Width        *int
	Height       *int

	Artist string
	Album  string
	Song   string
	Year   string

	// Extra carries other found values such as stream duration or codec.
	Extra map[string]string
}

// IsEmpty reports whether m carries no value at all.
func (m *Metadata) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.CreationDate == nil && m.Width == nil && m.Height == nil &&
		m.Artist == "" && m.Album == "" && m.Song == "" && m.Year == "" &&
		len(m.Extra) == 0
}

// DirectoryType names a group of tags produced by one decoder.
type DirectoryType string

const (
	DirJPEG DirectoryType = "jpeg"
	DirPNG  DirectoryType = "png"
	DirGIF  DirectoryType = "gif"
	DirBMP  DirectoryType = "bmp"
	DirWebP DirectoryType = "webp"
	DirTIFF DirectoryType = "tiff"
	DirHEIF DirectoryType = "heif"
	DirRaw  DirectoryType = "raw"
	DirPSD  DirectoryType = "psd"
	DirICO  DirectoryType = "ico"
	DirPCX  DirectoryType = "pcx"
	DirEPS  DirectoryType = "eps"

	DirExifIFD0   DirectoryType = "exif.ifd0"
	DirExifSubIFD DirectoryType = "exif.subifd"

	DirMP4Video  DirectoryType = "mp4.video" // tkhd
	DirMP4Media  DirectoryType = "mp4.media" // mdhd
	DirQuickTime DirectoryType = "quicktime" // mvhd
	DirAVI       DirectoryType = "avi"
	DirFFprobe   DirectoryType = "ffprobe"

	DirAudioTags DirectoryType = "audio.tags"
	DirWAV       DirectoryType = "wav"
	DirMP3Stream DirectoryType = "mp3.stream"
)

// Tag names shared between decoders and handlers.
const (
	// Base image directories.
	TagImageWidth  = "ImageWidth"
	TagImageHeight = "ImageHeight"

	// EXIF.
	TagExifImageWidth      = "ImageWidth"
	TagExifImageLength     = "ImageLength"
	TagPixelXDimension     = "PixelXDimension"
	TagPixelYDimension     = "PixelYDimension"
	TagDateTimeOriginal    = "DateTimeOriginal"
	TagOffsetTimeOriginal  = "OffsetTimeOriginal"
	TagDateTime            = "DateTime"
	TagOffsetTime          = "OffsetTime"
	TagDateTimeDigitized   = "DateTimeDigitized"
	TagOffsetTimeDigitized = "OffsetTimeDigitized"

	// Video containers.
	TagWidth            = "Width"
	TagHeight           = "Height"
	TagCreationTime     = "CreationTime"
	TagModificationTime = "ModificationTime"
	TagDuration         = "Duration"
	TagCodec            = "Codec"

	// Audio.
	TagArtist       = "Artist"
	TagAlbum        = "Album"
	TagTitle        = "Title"
	TagYear         = "Year"
	TagCreationDate = "CreationDate"
	TagSampleRate   = "SampleRate"
)

// Directory is one decoded group of tags.
type Directory struct {
	Type DirectoryType
	Tags map[string]string
}

// NewDirectory returns an empty directory of type t.
func NewDirectory(t DirectoryType) *Directory {
	return &Directory{Type: t, Tags: make(map[string]string)}
}

// Set stores value under tag, ignoring blank values.
func (d *Directory) Set(tag, value string) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
	if value == "" {
		return
	}
	d.Tags[tag] = value
}

// String returns the trimmed value of tag, or "" when absent.
func (d *Directory) String(tag string) string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.Tags[tag])
}

// Int returns the leading integer of tag's value. Values such as
// "1920 pixels" are accepted.
func (d *Directory) Int(tag string) (int, bool) {
	s := d.String(tag)
	if s == "" {
		return 0, false
	}
	if f := strings.Fields(s); len(f) > 0 {
		s = f[0]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Directories is the full decode result for one file, in decode order.
type Directories []*Directory

// First returns the first directory of type t, or nil.
func (ds Directories) First(t DirectoryType) *Directory {
	for _, d := range ds {
		if d != nil && d.Type == t {
			return d
		}
	}
	return nil
}

// OfType returns every directory of type t.
func (ds Directories) OfType(t DirectoryType) Directories {
	var out Directories
	for _, d := range ds {
		if d != nil && d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// Decoder turns a file into tag directories.
type Decoder interface {
	Decode(path string) (Directories, error)
}

// DecoderFunc adapts a plain function to [Decoder].
type DecoderFunc func(path string) (Directories, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (Directories, error) { return f(path) }

// Logger is the logging surface handlers need.
type Logger interface {
	Warn(string, ...interface{})
	Debug(string, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

func orNop(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
