package decode

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

// sizeFunc reads the pixel size from the start of a file.
type sizeFunc func(r io.ReadSeeker) (width, height int, err error)

// headerSource stores the size found by size in a directory of type t.
func headerSource(t metadata.DirectoryType, size sizeFunc) sourceFunc {
	return func(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
		w, h, err := size(r)
		if err != nil {
			return nil, err
		}
		d := metadata.NewDirectory(t)
		d.Set(metadata.TagImageWidth, strconv.Itoa(w))
		d.Set(metadata.TagImageHeight, strconv.Itoa(h))
		return metadata.Directories{d}, nil
	}
}

// psdSize reads the Photoshop file header: "8BPS", version 1 (PSD) or
// 2 (PSB), then big-endian height and width at offsets 14 and 18.
func psdSize(r io.ReadSeeker) (int, int, error) {
	var hdr [26]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, errors.Wrap(err, "read PSD header")
	}
	if string(hdr[:4]) != "8BPS" {
		return 0, 0, errors.Wrap(ErrUnsupported, "not a PSD file")
	}
	if v := binary.BigEndian.Uint16(hdr[4:6]); v != 1 && v != 2 {
		return 0, 0, errors.Errorf("unknown PSD version %d", v)
	}
	h := binary.BigEndian.Uint32(hdr[14:18])
	w := binary.BigEndian.Uint32(hdr[18:22])
	return int(w), int(h), nil
}

// icoSize reads the first entry of an ICO/CUR directory. A stored 0
// means 256 pixels.
func icoSize(r io.ReadSeeker) (int, int, error) {
	var hdr [6 + 16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, errors.Wrap(err, "read ICO header")
	}
	kind := binary.LittleEndian.Uint16(hdr[2:4])
	if binary.LittleEndian.Uint16(hdr[0:2]) != 0 || (kind != 1 && kind != 2) {
		return 0, 0, errors.Wrap(ErrUnsupported, "not an ICO file")
	}
	if binary.LittleEndian.Uint16(hdr[4:6]) == 0 {
		return 0, 0, errors.New("ICO file has no images")
	}
	side := func(b byte) int {
		if b == 0 {
			return 256
		}
		return int(b)
	}
	return side(hdr[6]), side(hdr[7]), nil
}

// pcxSize reads the image window (Xmin, Ymin, Xmax, Ymax) of a PCX
// header; both bounds are inclusive.
func pcxSize(r io.ReadSeeker) (int, int, error) {
	var hdr [128]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, errors.Wrap(err, "read PCX header")
	}
	if hdr[0] != 0x0A || hdr[2] != 1 {
		return 0, 0, errors.Wrap(ErrUnsupported, "not a PCX file")
	}
	le := binary.LittleEndian
	xMin, yMin := int(le.Uint16(hdr[4:6])), int(le.Uint16(hdr[6:8]))
	xMax, yMax := int(le.Uint16(hdr[8:10])), int(le.Uint16(hdr[10:12]))
	if xMax < xMin || yMax < yMin {
		return 0, 0, errors.Errorf("bad PCX window %d,%d-%d,%d", xMin, yMin, xMax, yMax)
	}
	return xMax - xMin + 1, yMax - yMin + 1, nil
}

const (
	// epsDOSMagic starts the binary header of DOS EPS files (C5 D0 D3 C6).
	epsDOSMagic = 0xC6D3D0C5
	// maxEPSHeader bounds how much PostScript is scanned for comments.
	maxEPSHeader = 64 << 10
)

// epsSize scans the first maxEPSHeader bytes of PostScript. "%ImageData"
// gives the pixel size of an embedded image; otherwise the first usable
// "%%BoundingBox" extent in points is used.
func epsSize(r io.ReadSeeker) (int, int, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, errors.Wrap(err, "read EPS header")
	}

	var start, length int64 = 0, maxEPSHeader
	switch {
	case binary.LittleEndian.Uint32(hdr[0:4]) == epsDOSMagic:
		start = int64(binary.LittleEndian.Uint32(hdr[4:8]))
		if n := int64(binary.LittleEndian.Uint32(hdr[8:12])); n < length {
			length = n
		}
	case bytes.HasPrefix(hdr[:], []byte("%!PS")):
	default:
		return 0, 0, errors.Wrap(ErrUnsupported, "not an EPS file")
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return 0, 0, errors.Wrap(err, "seek PostScript section")
	}

	var (
		boxW, boxH int
		haveBox    bool
	)
	sc := bufio.NewScanner(io.LimitReader(r, length))
	sc.Split(scanPSLines)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "%ImageData:"):
			if f := strings.Fields(strings.TrimPrefix(line, "%ImageData:")); len(f) >= 2 {
				w, errW := strconv.Atoi(f[0])
				h, errH := strconv.Atoi(f[1])
				if errW == nil && errH == nil && w > 0 && h > 0 {
					return w, h, nil
				}
			}
		case !haveBox && strings.HasPrefix(line, "%%BoundingBox:"):
			boxW, boxH, haveBox = boundingBox(strings.TrimPrefix(line, "%%BoundingBox:"))
		}
	}
	if haveBox {
		return boxW, boxH, nil
	}
	return 0, 0, errors.New("no EPS bounding box")
}

// boundingBox parses "llx lly urx ury"; "(atend)" and malformed boxes
// report false.
func boundingBox(s string) (int, int, bool) {
	f := strings.Fields(s)
	if len(f) != 4 {
		return 0, 0, false
	}
	var v [4]float64
	for i, x := range f {
		n, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, 0, false
		}
		v[i] = n
	}
	w, h := int(math.Round(v[2]-v[0])), int(math.Round(v[3]-v[1]))
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// scanPSLines splits on \n, \r\n or a bare \r, all of which occur in
// PostScript written on different platforms.
func scanPSLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
