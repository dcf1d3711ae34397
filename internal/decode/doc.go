// Package decode adapts third-party media decoding libraries to the
// metadata.Directories abstraction.
//
// Each decoder is a source that reads one aspect of a file (EXIF block,
// image header, MP4 boxes, AVI header, audio tags) and returns tag
// directories. [Router] picks the sources for a file by extension, runs
// all of them against one open handle and merges their results. Library
// panics are converted to errors.
package decode
