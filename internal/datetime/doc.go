// Package datetime parses the loosely formatted timestamps found in media
// tags and renders timestamps back into file-name fragments.
//
// All values produced by [Parser] are zone-naive: the wall clock that was
// read is kept and the location is always UTC. Zone and offset information
// only decides whether a string is accepted, it never shifts the clock.
//
// Types:
//   - Parser (Parse, ParseWithOffset)
//   - DateFormat, TimeFormat, DateTimeFormat enums
//
// Functions:
//   - FindMinOrNil(values...) → earliest non-nil value
//   - FormatDate / FormatTime / FormatDateTime
package datetime
