package decode

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/backmassage/renamer/internal/metadata"
)

// rawSource reads the TIFF-based EXIF header of camera raw files. The
// main image size goes to the raw base directory, the rest mirrors the
// EXIF layout.
func rawSource(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
	x, err := goexif.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode raw exif")
	}

	base := metadata.NewDirectory(metadata.DirRaw)
	ifd0 := metadata.NewDirectory(metadata.DirExifIFD0)
	sub := metadata.NewDirectory(metadata.DirExifSubIFD)

	setInt := func(d *metadata.Directory, name string, field goexif.FieldName) {
		if tag, err := x.Get(field); err == nil {
			if n, err := tag.Int(0); err == nil {
				d.Set(name, strconv.Itoa(n))
			}
		}
	}
	setString := func(d *metadata.Directory, name string, field goexif.FieldName) {
		if tag, err := x.Get(field); err == nil {
			if s, err := tag.StringVal(); err == nil {
				d.Set(name, s)
			}
		}
	}

	setInt(base, metadata.TagImageWidth, goexif.ImageWidth)
	setInt(base, metadata.TagImageHeight, goexif.ImageLength)
	setInt(sub, metadata.TagPixelXDimension, goexif.PixelXDimension)
	setInt(sub, metadata.TagPixelYDimension, goexif.PixelYDimension)
	setString(ifd0, metadata.TagDateTime, goexif.DateTime)
	setString(sub, metadata.TagDateTimeOriginal, goexif.DateTimeOriginal)
	setString(sub, metadata.TagDateTimeDigitized, goexif.DateTimeDigitized)

	return metadata.Directories{base, ifd0, sub}, nil
}
