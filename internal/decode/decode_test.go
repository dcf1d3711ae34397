package decode

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/probe"
)

// riffChunk encodes one chunk with its even-size padding.
func riffChunk(id string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString(id)
	_ = binary.Write(&b, binary.LittleEndian, uint32(len(body)))
	b.Write(body)
	if len(body)%2 == 1 {
		b.WriteByte(0)
	}
	return b.Bytes()
}

func riffList(kind string, chunks ...[]byte) []byte {
	body := []byte(kind)
	for _, c := range chunks {
		body = append(body, c...)
	}
	return riffChunk("LIST", body)
}

func buildAVI(width, height uint32, idit string) []byte {
	avih := make([]byte, 56)
	binary.LittleEndian.PutUint32(avih[0:], 40000) // 25 fps
	binary.LittleEndian.PutUint32(avih[16:], 250)
	binary.LittleEndian.PutUint32(avih[32:], width)
	binary.LittleEndian.PutUint32(avih[36:], height)

	hdrl := riffList("hdrl",
		riffChunk("avih", avih),
		riffList("strl", riffChunk("strh", make([]byte, 56))),
		riffChunk("IDIT", []byte(idit)),
	)
	movi := riffList("movi", riffChunk("00dc", []byte{1, 2, 3}))
	// A chunk after movi must not be read.
	late := riffChunk("IDIT", []byte("Mon Jan  1 00:00:00 2001\n\x00"))

	body := append([]byte("AVI "), hdrl...)
	body = append(body, movi...)
	body = append(body, late...)
	return riffChunk("RIFF", body)
}

func writeFile(t *testing.T, fs afero.Fs, name string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, data, 0o644))
}

func TestAVISource(t *testing.T) {
	data := buildAVI(720, 480, "Sat Jun  8 15:30:45 2024\n\x00")
	dirs, err := aviSource(bytes.NewReader(data), int64(len(data)), "clip.avi")
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	d := dirs[0]
	assert.Equal(t, metadata.DirAVI, d.Type)
	w, _ := d.Int(metadata.TagWidth)
	h, _ := d.Int(metadata.TagHeight)
	assert.Equal(t, 720, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, "Sat Jun  8 15:30:45 2024", d.String(metadata.TagCreationTime))
	assert.Equal(t, "10.000", d.String(metadata.TagDuration))
}

func TestAVISource_NotAVI(t *testing.T) {
	data := riffChunk("RIFF", append([]byte("WAVE"), riffChunk("fmt ", make([]byte, 16))...))
	_, err := aviSource(bytes.NewReader(data), int64(len(data)), "x.avi")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestNewSource_RecoversPanic(t *testing.T) {
	s := newSource("boom", func(io.ReadSeeker, int64, string) (metadata.Directories, error) {
		panic("index out of range")
	})
	dirs, err := s.run(bytes.NewReader(nil), 0, "x")
	assert.Nil(t, dirs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom decoder panicked")
}

func TestRouter_DecodeAVI(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/media/clip.AVI", buildAVI(1280, 720, "Sat Jun 08 15:30:45 2024"))

	dirs, err := NewRouter(fs).Decode("/media/clip.AVI")
	require.NoError(t, err)
	d := dirs.First(metadata.DirAVI)
	require.NotNil(t, d)
	w, _ := d.Int(metadata.TagWidth)
	assert.Equal(t, 1280, w)
}

func TestRouter_DecodePNGHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/img/pic.png", buf.Bytes())

	dirs, err := NewRouter(fs).Decode("/img/pic.png")
	require.NoError(t, err)
	d := dirs.First(metadata.DirPNG)
	require.NotNil(t, d)
	w, _ := d.Int(metadata.TagImageWidth)
	h, _ := d.Int(metadata.TagImageHeight)
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, "png", d.String(metadata.TagCodec))
}

func TestRouter_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a/notes.txt", []byte("hello"))
	writeFile(t, fs, "/a/broken.avi", []byte("definitely not riff"))

	rt := NewRouter(fs)

	_, err := rt.Decode("/a/notes.txt")
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = rt.Decode("/a/missing.jpg")
	assert.Error(t, err)

	_, err = rt.Decode("/a/broken.avi")
	assert.Error(t, err)
}

func TestRouter_Extensions(t *testing.T) {
	exts := NewRouter(afero.NewMemMapFs()).Extensions()
	for _, e := range []string{"jpg", "heic", "nef", "psd", "ico", "pcx", "eps", "mp4", "avi", "mp3", "flac", "wav"} {
		assert.Contains(t, exts, e)
	}
	assert.NotContains(t, exts, "txt")
	// Without ffprobe nothing can read Matroska.
	assert.NotContains(t, exts, "mkv")
}

func TestRouter_KnownAndSources(t *testing.T) {
	rt := NewRouter(afero.NewMemMapFs())
	assert.Contains(t, rt.Known(), "mkv")
	assert.Empty(t, rt.Sources("mkv"))
	assert.Equal(t, []string{"image-header", "exif"}, rt.Sources(".JPG"))
	assert.Equal(t, []string{"audio-tags", "mp3-stream"}, rt.Sources("mp3"))
	assert.Equal(t, []string{"psd-header", "exif"}, rt.Sources("psd"))

	withProbe := NewRouter(afero.NewMemMapFs(), WithProber(&probe.Prober{}))
	assert.Equal(t, []string{"ffprobe"}, withProbe.Sources("webm"))
	assert.Equal(t, []string{"mp4-boxes", "ffprobe"}, withProbe.Sources("mov"))
}

func TestProbeDirectories(t *testing.T) {
	pr := &probe.ProbeResult{
		Format: probe.FormatInfo{
			Duration: 12.5,
			Tags:     map[string]string{"creation_time": "2024-06-08T15:30:45.000000Z"},
		},
		VideoStreams: []probe.VideoStream{
			{Index: 0, Codec: "h264", Width: 1920, Height: 1080},
			{Index: 2, Codec: "h264", Width: 640, Height: 360, CreationTime: "2024-06-08T15:30:44.000000Z"},
		},
	}
	dirs := probeDirectories(pr)
	require.Len(t, dirs, 3)
	assert.Equal(t, "2024-06-08T15:30:45.000000Z", dirs[0].String(metadata.TagCreationTime))
	assert.Equal(t, "12.500", dirs[0].String(metadata.TagDuration))
	w, _ := dirs[2].Int(metadata.TagWidth)
	assert.Equal(t, 640, w)
	assert.Equal(t, "2024-06-08T15:30:44.000000Z", dirs[2].String(metadata.TagCreationTime))
}

func TestBoxTime(t *testing.T) {
	assert.Equal(t, "", boxTime(0))
	// 2024-06-08 15:30:45 UTC is 3800705445 seconds after 1904-01-01.
	assert.Equal(t, "2024-06-08 15:30:45", boxTime(3800705445))
}
