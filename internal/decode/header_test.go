package decode

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/metadata"
)

func buildPSD(version uint16, width, height uint32) []byte {
	b := make([]byte, 26)
	copy(b, "8BPS")
	binary.BigEndian.PutUint16(b[4:], version)
	binary.BigEndian.PutUint16(b[12:], 3) // channels
	binary.BigEndian.PutUint32(b[14:], height)
	binary.BigEndian.PutUint32(b[18:], width)
	binary.BigEndian.PutUint16(b[22:], 8) // depth
	binary.BigEndian.PutUint16(b[24:], 3) // RGB
	return b
}

func buildICO(width, height byte) []byte {
	b := make([]byte, 6+16)
	binary.LittleEndian.PutUint16(b[2:], 1)
	binary.LittleEndian.PutUint16(b[4:], 1)
	b[6], b[7] = width, height
	return b
}

func buildPCX(xMin, yMin, xMax, yMax uint16) []byte {
	b := make([]byte, 128)
	b[0], b[1], b[2], b[3] = 0x0A, 5, 1, 8
	le := binary.LittleEndian
	le.PutUint16(b[4:], xMin)
	le.PutUint16(b[6:], yMin)
	le.PutUint16(b[8:], xMax)
	le.PutUint16(b[10:], yMax)
	return b
}

func buildDOSEPS(ps string) []byte {
	hdr := make([]byte, 30)
	binary.LittleEndian.PutUint32(hdr[0:], epsDOSMagic)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(hdr)))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(len(ps)))
	return append(hdr, ps...)
}

func decodeSize(t *testing.T, name string, data []byte, dir metadata.DirectoryType) (int, int) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/img/"+name, data)
	dirs, err := NewRouter(fs).Decode("/img/" + name)
	require.NoError(t, err)
	d := dirs.First(dir)
	require.NotNil(t, d)
	w, _ := d.Int(metadata.TagImageWidth)
	h, _ := d.Int(metadata.TagImageHeight)
	return w, h
}

func TestHeader_PSD(t *testing.T) {
	w, h := decodeSize(t, "layers.psd", buildPSD(1, 1920, 1080), metadata.DirPSD)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h = decodeSize(t, "big.psb", buildPSD(2, 40000, 300), metadata.DirPSD)
	assert.Equal(t, 40000, w)
	assert.Equal(t, 300, h)

	_, _, err := psdSize(bytes.NewReader(buildPSD(3, 1, 1)))
	assert.Error(t, err)
	_, _, err = psdSize(bytes.NewReader(make([]byte, 26)))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestHeader_ICO(t *testing.T) {
	w, h := decodeSize(t, "favicon.ico", buildICO(32, 48), metadata.DirICO)
	assert.Equal(t, 32, w)
	assert.Equal(t, 48, h)

	w, h = decodeSize(t, "large.ico", buildICO(0, 0), metadata.DirICO)
	assert.Equal(t, 256, w)
	assert.Equal(t, 256, h)

	empty := buildICO(16, 16)
	binary.LittleEndian.PutUint16(empty[4:], 0)
	_, _, err := icoSize(bytes.NewReader(empty))
	assert.Error(t, err)

	_, _, err = icoSize(bytes.NewReader(buildPSD(1, 1, 1)))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestHeader_PCX(t *testing.T) {
	w, h := decodeSize(t, "scan.pcx", buildPCX(0, 0, 639, 479), metadata.DirPCX)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	w, h = decodeSize(t, "offset.pcx", buildPCX(10, 20, 19, 20), metadata.DirPCX)
	assert.Equal(t, 10, w)
	assert.Equal(t, 1, h)

	_, _, err := pcxSize(bytes.NewReader(buildPCX(5, 0, 4, 0)))
	assert.Error(t, err)
	_, _, err = pcxSize(bytes.NewReader(make([]byte, 128)))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestHeader_EPS(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		w, h int
	}{
		{
			name: "bounding box",
			data: []byte("%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 612 792\n%%EndComments\n"),
			w:    612, h: 792,
		},
		{
			name: "offset box with CR line ends",
			data: []byte("%!PS-Adobe-3.0 EPSF-3.0\r%%BoundingBox: 10 20 110 70\r%%EndComments\r"),
			w:    100, h: 50,
		},
		{
			name: "atend box resolved later",
			data: []byte("%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: (atend)\n%%EndComments\nshowpage\n%%Trailer\n%%BoundingBox: 0 0 200 100\n"),
			w:    200, h: 100,
		},
		{
			name: "image data wins",
			data: []byte("%!PS-Adobe-3.0 EPSF-3.0\r\n%%BoundingBox: 0 0 72 72\r\n%ImageData: 300 200 8 3 0 1 1 \"beginimage\"\r\n"),
			w:    300, h: 200,
		},
		{
			name: "DOS binary header",
			data: buildDOSEPS("%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 50 40\n"),
			w:    50, h: 40,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := epsSize(bytes.NewReader(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.w, w)
			assert.Equal(t, tc.h, h)
		})
	}

	w, h := decodeSize(t, "logo.eps", cases[0].data, metadata.DirEPS)
	assert.Equal(t, 612, w)
	assert.Equal(t, 792, h)
}

func TestHeader_EPSFailures(t *testing.T) {
	_, _, err := epsSize(bytes.NewReader([]byte("%!PS-Adobe-3.0 EPSF-3.0\n%%EndComments\n")))
	assert.Error(t, err)

	_, _, err = epsSize(bytes.NewReader([]byte("GIF89a not postscript")))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestHeader_ChainResolvesDimensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/img/a.psd", buildPSD(1, 800, 600))
	writeFile(t, fs, "/img/b.ICO", buildICO(16, 16))
	writeFile(t, fs, "/img/c.pcx", buildPCX(0, 0, 99, 49))
	writeFile(t, fs, "/img/d.eps", []byte("%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 30 20\n"))
	chain := metadata.DefaultChain(NewRouter(fs), nil)

	want := map[string][2]int{
		"/img/a.psd": {800, 600},
		"/img/b.ICO": {16, 16},
		"/img/c.pcx": {100, 50},
		"/img/d.eps": {30, 20},
	}
	for path, dims := range want {
		md, err := chain.Extract(path)
		require.NoError(t, err, path)
		require.NotNil(t, md, path)
		assert.Equal(t, dims[0], *md.Width, path)
		assert.Equal(t, dims[1], *md.Height, path)
	}
}
