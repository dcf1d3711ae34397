package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

// maxTextChunk caps how much of a text chunk (IDIT, ICRD) is read.
const maxTextChunk = 256

// aviSource walks the RIFF tree of an AVI file up to the movi list and
// reads the main header (avih) and the creation date chunks.
func aviSource(r io.ReadSeeker, size int64, _ string) (metadata.Directories, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "read RIFF header")
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "AVI " {
		return nil, errors.Wrap(ErrUnsupported, "not an AVI file")
	}
	end := 8 + int64(binary.LittleEndian.Uint32(hdr[4:8]))
	if size > 0 && end > size {
		end = size
	}

	d := metadata.NewDirectory(metadata.DirAVI)
	if err := walkRIFF(r, 12, end, d); err != nil {
		return nil, err
	}
	return metadata.Directories{d}, nil
}

func walkRIFF(r io.ReadSeeker, pos, end int64, d *metadata.Directory) error {
	var ch [8]byte
	for pos+8 <= end {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return errors.Wrap(err, "seek chunk")
		}
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			return errors.Wrap(err, "read chunk header")
		}
		id := string(ch[:4])
		n := int64(binary.LittleEndian.Uint32(ch[4:]))
		body := pos + 8
		bodyEnd := body + n
		if bodyEnd > end {
			bodyEnd = end
		}

		switch id {
		case "LIST":
			var kind [4]byte
			if n < 4 {
				break
			}
			if _, err := io.ReadFull(r, kind[:]); err != nil {
				return errors.Wrap(err, "read list type")
			}
			switch string(kind[:]) {
			case "movi":
				return nil
			case "hdrl", "INFO":
				if err := walkRIFF(r, body+4, bodyEnd, d); err != nil {
					return err
				}
			}
		case "avih":
			if err := readAVIH(r, n, d); err != nil {
				return err
			}
		case "IDIT":
			d.Set(metadata.TagCreationTime, readText(r, n))
		case "ICRD":
			if d.String(metadata.TagCreationTime) == "" {
				d.Set(metadata.TagCreationTime, readText(r, n))
			}
		}

		// Chunks are padded to an even size.
		pos = body + n + n&1
	}
	return nil
}

// readAVIH decodes MainAVIHeader: frame period at 0, total frames at 16,
// width at 32, height at 36.
func readAVIH(r io.Reader, n int64, d *metadata.Directory) error {
	if n < 40 {
		return errors.Errorf("avih chunk too short (%d bytes)", n)
	}
	var h [40]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return errors.Wrap(err, "read avih")
	}
	le := binary.LittleEndian
	usPerFrame := le.Uint32(h[0:4])
	frames := le.Uint32(h[16:20])
	d.Set(metadata.TagWidth, strconv.FormatUint(uint64(le.Uint32(h[32:36])), 10))
	d.Set(metadata.TagHeight, strconv.FormatUint(uint64(le.Uint32(h[36:40])), 10))
	if usPerFrame > 0 && frames > 0 {
		d.Set(metadata.TagDuration, fmt.Sprintf("%.3f", float64(usPerFrame)*float64(frames)/1e6))
	}
	return nil
}

func readText(r io.Reader, n int64) string {
	if n > maxTextChunk {
		n = maxTextChunk
	}
	buf := make([]byte, n)
	k, _ := io.ReadFull(r, buf)
	return strings.TrimSpace(strings.TrimRight(string(buf[:k]), "\x00"))
}
