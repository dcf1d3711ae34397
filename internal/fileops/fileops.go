// Package fileops reads the file-system facts a rename plan is built from.
// All access goes through an afero.Fs so tests can use an in-memory tree.
package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrFileNotFound is returned (wrapped) for paths that do not exist.
var ErrFileNotFound = errors.New("file not found")

// Ops is the file-system collaborator.
type Ops struct {
	fs afero.Fs
}

// New returns Ops over fs. A nil fs means the OS file system.
func New(fs afero.Fs) *Ops {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Ops{fs: fs}
}

// Fs returns the underlying file system.
func (o *Ops) Fs() afero.Fs { return o.fs }

func (o *Ops) stat(path string) (os.FileInfo, error) {
	info, err := o.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	return info, nil
}

// Validate fails with ErrFileNotFound when path does not exist.
func (o *Ops) Validate(path string) error {
	_, err := o.stat(path)
	return err
}

// AbsolutePath returns the cleaned absolute form of path.
func (o *Ops) AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "absolute path of %s", path)
	}
	return abs, nil
}

// IsFile reports whether path is a regular file (not a directory).
func (o *Ops) IsFile(path string) (bool, error) {
	info, err := o.stat(path)
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Size returns the size of path in bytes.
func (o *Ops) Size(path string) (int64, error) {
	info, err := o.stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModificationTime returns the local wall-clock modification time of
// path, stored as a zone-naive (UTC) value.
func (o *Ops) ModificationTime(path string) (*time.Time, error) {
	info, err := o.stat(path)
	if err != nil {
		return nil, err
	}
	t := wallClock(info.ModTime())
	return &t, nil
}

// CreationTime returns the birth time of path where the platform records
// one, and the modification time elsewhere.
func (o *Ops) CreationTime(path string) (*time.Time, error) {
	info, err := o.stat(path)
	if err != nil {
		return nil, err
	}
	bt, ok := birthTime(info)
	if !ok {
		bt = info.ModTime()
	}
	t := wallClock(bt)
	return &t, nil
}

// NameWithoutExtension returns the base name of path minus Extension.
func NameWithoutExtension(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, Extension(path))
}

// Extension returns the "."-prefixed extension of path, or "" when there
// is none. A leading dot (".bashrc") does not start an extension.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

// ParentFolders returns the names of the directories containing path,
// nearest first, excluding the root.
func ParentFolders(path string) []string {
	var out []string
	dir := filepath.Dir(filepath.Clean(path))
	for {
		name := filepath.Base(dir)
		if name == "." || name == string(filepath.Separator) || name == "" || dir == filepath.VolumeName(dir)+string(filepath.Separator) {
			break
		}
		out = append(out, name)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return out
}

// wallClock keeps the local wall clock of t and drops the zone, matching
// the zone-naive timestamps read from file contents.
func wallClock(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC)
}
