package naming

import "strings"

// Truncate removes Count runes from the begin or end of the name, or
// trims surrounding white space (PositionTrim).
type Truncate struct {
	noPrepare
	Count    int
	Position Position
}

func (t *Truncate) Apply(r *FileRecord) {
	if r.Name == "" {
		return
	}
	if t.Position == PositionTrim {
		r.NewName = strings.TrimSpace(r.Name)
		return
	}
	if t.Count < 1 {
		return
	}

	runes := []rune(r.Name)
	if t.Count >= len(runes) {
		r.NewName = ""
		return
	}
	if t.Position == PositionEnd {
		r.NewName = string(runes[:len(runes)-t.Count])
	} else {
		r.NewName = string(runes[t.Count:])
	}
}
