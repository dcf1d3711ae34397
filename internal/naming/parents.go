package naming

import "strings"

// ParentFolders adds the Count nearest parent folder names, outermost
// first, joined by Separator.
type ParentFolders struct {
	noPrepare
	Count     int
	Position  Position
	Separator string
}

func (t *ParentFolders) Apply(r *FileRecord) {
	if t.Count <= 0 {
		return
	}
	n := t.Count
	if n > len(r.Parents) {
		n = len(r.Parents)
	}
	picked := make([]string, n)
	for i := 0; i < n; i++ {
		picked[n-1-i] = r.Parents[i]
	}
	r.NewName = place(t.Position, r.Name, strings.Join(picked, t.Separator), t.Separator)
}
