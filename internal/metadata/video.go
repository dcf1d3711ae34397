package metadata

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/datetime"
)

// VideoFormat declares where a container keeps its dimensions and
// creation time. Every tag is looked up in every listed directory.
type VideoFormat struct {
	Directories []DirectoryType
	WidthTags   []string
	HeightTags  []string
	DateTags    []string
}

// VideoHandler reads dimensions and creation time of video containers.
// A file may report several tracks; the smallest positive dimensions and
// the earliest timestamp win.
type VideoHandler struct {
	name   string
	exts   extensionSet
	format VideoFormat

	dec   Decoder
	dates *datetime.Parser
	log   Logger
}

// NewVideoHandler returns a handler for exts described by format.
func NewVideoHandler(name string, format VideoFormat, dec Decoder, log Logger, exts ...string) *VideoHandler {
	log = orNop(log)
	return &VideoHandler{
		name:   name,
		exts:   newExtensionSet(exts...),
		format: format,
		dec:    dec,
		dates:  datetime.NewParser(log),
		log:    log,
	}
}

func (h *VideoHandler) Name() string              { return h.name }
func (h *VideoHandler) CanHandle(ext string) bool { return h.exts.canHandle(ext) }

func (h *VideoHandler) Extract(path string) (*Metadata, error) {
	name := filepath.Base(path)
	dirs, err := h.dec.Decode(path)
	if err != nil {
		h.log.Warn("%s: cannot decode %s: %v", h.name, name, err)
		return nil, errors.Wrapf(ErrDimensionsUnresolved, "%s: %s (%v)", h.name, name, err)
	}

	var (
		width, height int
		dates         []*time.Time
		extra         = map[string]string{}
	)
	for _, t := range h.format.Directories {
		for _, d := range dirs.OfType(t) {
			width = minPositive(width, d, h.format.WidthTags)
			height = minPositive(height, d, h.format.HeightTags)
			for _, tag := range h.format.DateTags {
				text := d.String(tag)
				if text == "" {
					continue
				}
				if ts, ok := h.dates.Parse(text); ok {
					dates = append(dates, &ts)
				}
			}
			for _, tag := range []string{TagDuration, TagCodec} {
				if v := d.String(tag); v != "" && extra[tag] == "" {
					extra[tag] = v
				}
			}
		}
	}

	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrDimensionsUnresolved, "%s: %s", h.name, name)
	}

	md := &Metadata{
		CreationDate: datetime.FindMinOrNil(dates...),
		Width:        intPtr(width),
		Height:       intPtr(height),
	}
	if len(extra) > 0 {
		md.Extra = extra
	}
	return md, nil
}

// minPositive folds the positive values of tags in d into cur, where 0
// means nothing found yet.
func minPositive(cur int, d *Directory, tags []string) int {
	for _, tag := range tags {
		n, ok := d.Int(tag)
		if !ok || n <= 0 {
			continue
		}
		if cur == 0 || n < cur {
			cur = n
		}
	}
	return cur
}
