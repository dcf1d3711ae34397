package decode

import (
	"io"

	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

// ErrUnsupported is returned for files no source can read.
var ErrUnsupported = errors.New("unsupported file format")

// sourceFunc reads directories from r. path is the original file path,
// used only by sources that shell out.
type sourceFunc func(r io.ReadSeeker, size int64, path string) (metadata.Directories, error)

type source struct {
	name string
	run  sourceFunc
}

// newSource wraps fn so a panic inside a decoding library becomes an
// error for this file only.
func newSource(name string, fn sourceFunc) source {
	return source{name: name, run: func(r io.ReadSeeker, size int64, path string) (dirs metadata.Directories, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				dirs = nil
				err = errors.Errorf("%s decoder panicked: %v", name, rec)
			}
		}()
		return fn(r, size, path)
	}}
}

func rewind(r io.Seeker) error {
	_, err := r.Seek(0, io.SeekStart)
	return errors.Wrap(err, "rewind")
}
