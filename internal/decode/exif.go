package decode

import (
	"io"

	exif "github.com/dsoprea/go-exif/v3"
	heicexif "github.com/dsoprea/go-heic-exif-extractor"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure"
	pngstructure "github.com/dsoprea/go-png-image-structure"
	tiffstructure "github.com/dsoprea/go-tiff-image-structure"
	riimage "github.com/dsoprea/go-utility/image"
	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

type mediaParser interface {
	Parse(rs io.ReadSeeker, size int) (riimage.MediaContext, error)
}

// Media parsers are built per call; they are not documented as safe for
// concurrent use.
var (
	jpegParser = func() mediaParser { return jpegstructure.NewJpegMediaParser() }
	pngParser  = func() mediaParser { return pngstructure.NewPngMediaParser() }
	tiffParser = func() mediaParser { return tiffstructure.NewTiffMediaParser() }
	heicParser = func() mediaParser { return heicexif.NewHeicExifMediaParser() }
)

// IFD paths as reported by exif.GetFlatExifData.
var exifIfdDirs = map[string]metadata.DirectoryType{
	"IFD":      metadata.DirExifIFD0,
	"IFD/Exif": metadata.DirExifSubIFD,
}

// exifSource locates the EXIF block with the structural parser built by
// newParser, falling back to a brute-force search of the whole file. A
// nil newParser goes straight to the search. Files without EXIF yield no
// directories and no error.
func exifSource(newParser func() mediaParser) sourceFunc {
	return func(r io.ReadSeeker, size int64, _ string) (metadata.Directories, error) {
		var raw []byte
		if newParser != nil {
			if mc, err := newParser().Parse(r, int(size)); err == nil && mc != nil {
				_, raw, _ = mc.Exif()
			}
		}

		if len(raw) == 0 {
			if err := rewind(r); err != nil {
				return nil, err
			}
			data, err := exif.SearchAndExtractExifWithReader(r)
			if err != nil {
				if errors.Is(err, exif.ErrNoExif) {
					return nil, nil
				}
				return nil, errors.Wrap(err, "search exif")
			}
			raw = data
		}

		entries, _, err := exif.GetFlatExifData(raw, nil)
		if err != nil {
			return nil, errors.Wrap(err, "parse exif")
		}
		return exifDirectories(entries), nil
	}
}

func exifDirectories(entries []exif.ExifTag) metadata.Directories {
	byType := map[metadata.DirectoryType]*metadata.Directory{}
	var out metadata.Directories
	for _, e := range entries {
		t, ok := exifIfdDirs[e.IfdPath]
		if !ok || e.TagName == "" {
			continue
		}
		d := byType[t]
		if d == nil {
			d = metadata.NewDirectory(t)
			byType[t] = d
			out = append(out, d)
		}
		if _, seen := d.Tags[e.TagName]; !seen {
			d.Set(e.TagName, e.FormattedFirst)
		}
	}
	return out
}
