package decode

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

// tagSource reads ID3, MP4, FLAC and Ogg tags. Untagged files yield no
// directories and no error.
func tagSource(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read audio tags")
	}

	d := metadata.NewDirectory(metadata.DirAudioTags)
	d.Set(metadata.TagArtist, m.Artist())
	d.Set(metadata.TagTitle, m.Title())
	d.Set(metadata.TagAlbum, m.Album())
	if y := m.Year(); y > 0 {
		d.Set(metadata.TagYear, strconv.Itoa(y))
	}
	d.Set(metadata.TagCodec, string(m.FileType()))
	return metadata.Directories{d}, nil
}

// wavSource reads the LIST/INFO chunk of a WAV file.
func wavSource(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
	dec := wav.NewDecoder(r)
	dec.ReadMetadata()
	if err := dec.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "read wav metadata")
	}

	d := metadata.NewDirectory(metadata.DirWAV)
	if dec.SampleRate > 0 {
		d.Set(metadata.TagSampleRate, strconv.FormatUint(uint64(dec.SampleRate), 10))
	}
	if md := dec.Metadata; md != nil {
		d.Set(metadata.TagArtist, md.Artist)
		d.Set(metadata.TagTitle, md.Title)
		d.Set(metadata.TagAlbum, md.Product)
		d.Set(metadata.TagCreationDate, md.CreationDate)
	}
	return metadata.Directories{d}, nil
}

// mp3StreamSource decodes MP3 frame headers for sample rate and duration.
func mp3StreamSource(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode mp3 stream")
	}

	d := metadata.NewDirectory(metadata.DirMP3Stream)
	rate := dec.SampleRate()
	d.Set(metadata.TagSampleRate, strconv.Itoa(rate))
	// Length is in bytes of 16-bit stereo PCM, 4 bytes per sample.
	if n := dec.Length(); n > 0 && rate > 0 {
		d.Set(metadata.TagDuration, fmt.Sprintf("%.3f", float64(n)/4/float64(rate)))
	}
	return metadata.Directories{d}, nil
}
