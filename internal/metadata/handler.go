package metadata

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrDimensionsUnresolved is returned by image and video handlers when
// width or height could not be found by any lookup path.
var ErrDimensionsUnresolved = errors.New("width or height not found")

// Handler extracts Metadata for the file formats it supports.
type Handler interface {
	// Name identifies the handler in logs and metrics.
	Name() string
	// CanHandle reports whether ext (with or without the dot) is supported.
	CanHandle(ext string) bool
	// Extract returns the metadata of path. A nil Metadata with a nil
	// error means the file carries nothing usable.
	Extract(path string) (*Metadata, error)
}

// extensionSet is a case-insensitive set of extensions stored without dots.
type extensionSet map[string]struct{}

func newExtensionSet(exts ...string) extensionSet {
	s := make(extensionSet, len(exts))
	for _, e := range exts {
		s[normalizeExt(e)] = struct{}{}
	}
	return s
}

// canHandle is true for an empty ext only when the set is empty, and for
// a non-empty ext only when it is a member.
func (s extensionSet) canHandle(ext string) bool {
	ext = normalizeExt(ext)
	if ext == "" {
		return len(s) == 0
	}
	_, ok := s[ext]
	return ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func intPtr(n int) *int { return &n }
