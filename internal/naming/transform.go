package naming

import (
	"strings"

	"github.com/pkg/errors"
)

// Transform proposes new names for a batch of records.
//
// Prepare runs once, single-threaded, over the whole batch before any
// Apply and may reorder it. Apply is then called concurrently, once per
// record, and must only touch that record.
type Transform interface {
	Prepare(records []*FileRecord) []*FileRecord
	Apply(r *FileRecord)
}

// Position says where a fragment goes relative to the original name.
type Position string

const (
	PositionBegin      Position = "begin"
	PositionEnd        Position = "end"
	PositionEverywhere Position = "everywhere" // ReplaceText only
	PositionReplace    Position = "replace"    // DateTime, ImageDimensions
	PositionTrim       Position = "trim"       // Truncate only
)

// ParsePosition validates s against the positions in allowed.
func ParsePosition(s string, allowed ...Position) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if p == a {
			return p, nil
		}
	}
	return "", errors.Errorf("invalid position %q (want one of %v)", s, allowed)
}

// noPrepare is embedded by transforms that need no batch preparation.
type noPrepare struct{}

func (noPrepare) Prepare(records []*FileRecord) []*FileRecord { return records }

// place puts fragment before or after name, joined by sep. PositionReplace
// drops the name.
func place(pos Position, name, fragment, sep string) string {
	switch pos {
	case PositionReplace:
		return fragment
	case PositionEnd:
		return name + sep + fragment
	default:
		return fragment + sep + name
	}
}
