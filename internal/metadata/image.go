package metadata

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/datetime"
)

// minImageYear filters out placeholder timestamps such as 0000:00:00.
const minImageYear = 1900

// exifDirs are searched in order for the generic EXIF fallbacks.
var exifDirs = []DirectoryType{DirExifIFD0, DirExifSubIFD}

// exifDimensionTags are tried after the base directory, in order.
var exifDimensionTags = [][2]string{
	{TagExifImageWidth, TagExifImageLength},
	{TagPixelXDimension, TagPixelYDimension},
}

// exifDateTags pairs each timestamp tag with its offset tag.
var exifDateTags = [][2]string{
	{TagDateTimeOriginal, TagOffsetTimeOriginal},
	{TagDateTime, TagOffsetTime},
	{TagDateTimeDigitized, TagOffsetTimeDigitized},
}

// ImageHandler reads dimensions and the capture time of still images.
type ImageHandler struct {
	name      string
	exts      extensionSet
	base      DirectoryType
	widthTag  string
	heightTag string

	dec   Decoder
	dates *datetime.Parser
	log   Logger
}

// NewImageHandler returns a handler for exts whose decoder reports the
// native dimensions in directory base under TagImageWidth/TagImageHeight.
func NewImageHandler(name string, base DirectoryType, dec Decoder, log Logger, exts ...string) *ImageHandler {
	log = orNop(log)
	return &ImageHandler{
		name:      name,
		exts:      newExtensionSet(exts...),
		base:      base,
		widthTag:  TagImageWidth,
		heightTag: TagImageHeight,
		dec:       dec,
		dates:     datetime.NewParser(log),
		log:       log,
	}
}

func (h *ImageHandler) Name() string              { return h.name }
func (h *ImageHandler) CanHandle(ext string) bool { return h.exts.canHandle(ext) }

// Extract fails with ErrDimensionsUnresolved when width or height cannot
// be resolved, including when the file cannot be decoded at all.
func (h *ImageHandler) Extract(path string) (*Metadata, error) {
	name := filepath.Base(path)
	dirs, err := h.dec.Decode(path)
	if err != nil {
		h.log.Warn("%s: cannot decode %s: %v", h.name, name, err)
		return nil, errors.Wrapf(ErrDimensionsUnresolved, "%s: %s (%v)", h.name, name, err)
	}

	width, height := h.dimensions(dirs)
	if width == nil || height == nil {
		return nil, errors.Wrapf(ErrDimensionsUnresolved, "%s: %s", h.name, name)
	}

	return &Metadata{
		CreationDate: h.creationDate(dirs),
		Width:        width,
		Height:       height,
	}, nil
}

func (h *ImageHandler) dimensions(dirs Directories) (width, height *int) {
	if base := dirs.First(h.base); base != nil {
		if w, ok := base.Int(h.widthTag); ok && w > 0 {
			width = intPtr(w)
		}
		if v, ok := base.Int(h.heightTag); ok && v > 0 {
			height = intPtr(v)
		}
	}

	for _, pair := range exifDimensionTags {
		for _, t := range exifDirs {
			d := dirs.First(t)
			if d == nil {
				continue
			}
			if width == nil {
				if w, ok := d.Int(pair[0]); ok && w > 0 {
					width = intPtr(w)
				}
			}
			if height == nil {
				if v, ok := d.Int(pair[1]); ok && v > 0 {
					height = intPtr(v)
				}
			}
		}
	}
	return width, height
}

// creationDate returns the earliest parseable EXIF timestamp at or after
// minImageYear.
func (h *ImageHandler) creationDate(dirs Directories) *time.Time {
	var found []*time.Time
	for _, pair := range exifDateTags {
		text, offset := lookupExif(dirs, pair[0]), lookupExif(dirs, pair[1])
		if text == "" {
			continue
		}
		t, ok := h.dates.ParseWithOffset(text, offset)
		if !ok || t.Year() < minImageYear {
			continue
		}
		found = append(found, &t)
	}
	return datetime.FindMinOrNil(found...)
}

func lookupExif(dirs Directories, tag string) string {
	for _, t := range exifDirs {
		if v := dirs.First(t).String(tag); v != "" {
			return v
		}
	}
	return ""
}
