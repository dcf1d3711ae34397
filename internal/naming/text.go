package naming

import "strings"

// AddText adds Text at the begin or end of the name.
type AddText struct {
	noPrepare
	Text     string
	Position Position
}

func (t *AddText) Apply(r *FileRecord) {
	r.NewName = place(t.Position, r.Name, t.Text, "")
}

// RemoveText strips Text when the name starts (begin) or ends (end) with
// it.
type RemoveText struct {
	noPrepare
	Text     string
	Position Position
}

func (t *RemoveText) Apply(r *FileRecord) {
	if t.Text == "" {
		return
	}
	switch t.Position {
	case PositionEnd:
		r.NewName = strings.TrimSuffix(r.Name, t.Text)
	default:
		r.NewName = strings.TrimPrefix(r.Name, t.Text)
	}
}

// ReplaceText replaces the first (begin), last (end) or every
// (everywhere) literal occurrence of Text with Replacement.
type ReplaceText struct {
	noPrepare
	Text        string
	Replacement string
	Position    Position
}

func (t *ReplaceText) Apply(r *FileRecord) {
	if t.Text == "" {
		return
	}
	name := r.Name
	switch t.Position {
	case PositionEverywhere:
		r.NewName = strings.ReplaceAll(name, t.Text, t.Replacement)
	case PositionEnd:
		i := strings.LastIndex(name, t.Text)
		if i < 0 {
			r.NewName = name
			return
		}
		r.NewName = name[:i] + t.Replacement + name[i+len(t.Text):]
	default:
		r.NewName = strings.Replace(name, t.Text, t.Replacement, 1)
	}
}

// ExtensionChange replaces the extension of files. Directories are left
// alone. An empty Extension removes it.
type ExtensionChange struct {
	noPrepare
	Extension string
}

func (t *ExtensionChange) Apply(r *FileRecord) {
	if !r.IsFile {
		return
	}
	ext := strings.TrimSpace(t.Extension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.NewExtension = ext
}
