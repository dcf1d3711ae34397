package metadata

import (
	"path/filepath"
	"strconv"

	"github.com/backmassage/renamer/internal/datetime"
)

// AudioHandler reads artist, album, title and date tags. It never fails:
// undecodable files yield an empty Metadata.
type AudioHandler struct {
	name string
	exts extensionSet
	// dirs are consulted in order; the first non-empty value per field wins.
	dirs []DirectoryType

	dec   Decoder
	dates *datetime.Parser
	log   Logger
}

// NewAudioHandler returns a handler for exts reading tags from dirs.
func NewAudioHandler(name string, dirs []DirectoryType, dec Decoder, log Logger, exts ...string) *AudioHandler {
	log = orNop(log)
	return &AudioHandler{
		name:  name,
		exts:  newExtensionSet(exts...),
		dirs:  dirs,
		dec:   dec,
		dates: datetime.NewParser(log),
		log:   log,
	}
}

func (h *AudioHandler) Name() string              { return h.name }
func (h *AudioHandler) CanHandle(ext string) bool { return h.exts.canHandle(ext) }

func (h *AudioHandler) Extract(path string) (*Metadata, error) {
	md := &Metadata{}
	dirs, err := h.dec.Decode(path)
	if err != nil {
		h.log.Warn("%s: cannot read tags of %s: %v", h.name, filepath.Base(path), err)
		return md, nil
	}

	lookup := func(tag string) string {
		for _, t := range h.dirs {
			if v := dirs.First(t).String(tag); v != "" {
				return v
			}
		}
		return ""
	}

	md.Artist = lookup(TagArtist)
	md.Album = lookup(TagAlbum)
	md.Song = lookup(TagTitle)
	md.Year = lookup(TagYear)
	if text := lookup(TagCreationDate); text != "" {
		if t, ok := h.dates.Parse(text); ok {
			md.CreationDate = &t
		}
	}
	if md.Year == "" && md.CreationDate != nil {
		md.Year = strconv.Itoa(md.CreationDate.Year())
	}

	for _, tag := range []string{TagDuration, TagSampleRate, TagCodec} {
		if v := lookup(tag); v != "" {
			if md.Extra == nil {
				md.Extra = map[string]string{}
			}
			md.Extra[tag] = v
		}
	}

	if md.IsEmpty() {
		h.log.Debug("%s: no tags in %s", h.name, filepath.Base(path))
	}
	return md, nil
}
