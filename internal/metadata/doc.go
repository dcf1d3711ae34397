// Package metadata extracts normalized fields (creation time, dimensions,
// audio tags) from media files through an ordered chain of handlers.
//
// Handlers never read bytes themselves. A [Decoder] turns a path into
// [Directories], a set of named tag maps produced by third-party decoding
// libraries, and each handler picks the tags it knows about.
//
// Types:
//   - Metadata, Directory, Directories, DirectoryType
//   - Handler: ImageHandler, VideoHandler, AudioHandler, CatchAllHandler
//   - Chain (Extract, HandlerFor)
//
// Functions:
//   - DefaultChain(decoder, log) → *Chain with the built-in format table
package metadata
