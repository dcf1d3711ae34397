package naming

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/renamer/internal/fileops"
	"github.com/backmassage/renamer/internal/metadata"
)

// FileRecord is one input file. Everything except NewName and
// NewExtension is fixed when the record is built.
type FileRecord struct {
	Path      string // absolute
	Name      string // base name without extension
	Extension string // "" or "."-prefixed
	IsFile    bool
	Size      int64

	FsCreationDate     *time.Time
	FsModificationDate *time.Time

	// Parents are the containing folder names, nearest first.
	Parents []string

	Metadata    *metadata.Metadata
	MetadataErr error

	NewName      string
	NewExtension string
}

// Extractor produces metadata for a path.
type Extractor interface {
	Extract(path string) (*metadata.Metadata, error)
}

// BuildRecord reads the file-system facts of path and runs ex on it.
// Only file-system failures are returned; extraction failures are kept in
// MetadataErr. A nil ex skips extraction.
func BuildRecord(ops *fileops.Ops, ex Extractor, path string) (*FileRecord, error) {
	abs, err := ops.AbsolutePath(path)
	if err != nil {
		return nil, err
	}
	if err := ops.Validate(abs); err != nil {
		return nil, err
	}
	isFile, err := ops.IsFile(abs)
	if err != nil {
		return nil, err
	}
	size, err := ops.Size(abs)
	if err != nil {
		return nil, err
	}
	created, err := ops.CreationTime(abs)
	if err != nil {
		return nil, err
	}
	modified, err := ops.ModificationTime(abs)
	if err != nil {
		return nil, err
	}

	r := &FileRecord{
		Path:               abs,
		IsFile:             isFile,
		Size:               size,
		FsCreationDate:     created,
		FsModificationDate: modified,
		Parents:            fileops.ParentFolders(abs),
	}
	if isFile {
		r.Name = fileops.NameWithoutExtension(abs)
		r.Extension = fileops.Extension(abs)
	} else {
		r.Name = filepath.Base(abs)
	}
	r.Reset()

	if isFile && ex != nil {
		r.Metadata, r.MetadataErr = ex.Extract(abs)
	}
	return r, nil
}

// Reset discards the proposal.
func (r *FileRecord) Reset() {
	r.NewName = r.Name
	r.NewExtension = r.Extension
}

// OldFullName is Name + Extension.
func (r *FileRecord) OldFullName() string { return FullName(r.Name, r.Extension) }

// NewFullName is the proposed NewName + NewExtension.
func (r *FileRecord) NewFullName() string { return FullName(r.NewName, r.NewExtension) }

// IsRenamed reports whether the proposal differs from the original name.
func (r *FileRecord) IsRenamed() bool {
	return r.Name != r.NewName || r.Extension != r.NewExtension
}

// ContentCreationDate is the creation time found in the file contents.
func (r *FileRecord) ContentCreationDate() *time.Time {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.CreationDate
}

// Width is the image or video width found in the file contents.
func (r *FileRecord) Width() *int {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.Width
}

// Height is the image or video height found in the file contents.
func (r *FileRecord) Height() *int {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.Height
}

// FullName joins a base name and an extension. A non-blank extension
// without a leading dot gets one; a blank extension adds nothing.
func FullName(base, ext string) string {
	if strings.TrimSpace(ext) == "" {
		return base
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}
