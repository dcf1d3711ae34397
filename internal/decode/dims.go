package decode

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strconv"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/backmassage/renamer/internal/metadata"
)

// dimensionSource reads the image header only and stores the size in a
// directory of type t.
func dimensionSource(t metadata.DirectoryType) sourceFunc {
	return func(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
		cfg, format, err := image.DecodeConfig(r)
		if err != nil {
			return nil, errors.Wrap(err, "decode image header")
		}
		d := metadata.NewDirectory(t)
		d.Set(metadata.TagImageWidth, strconv.Itoa(cfg.Width))
		d.Set(metadata.TagImageHeight, strconv.Itoa(cfg.Height))
		d.Set(metadata.TagCodec, format)
		return metadata.Directories{d}, nil
	}
}
