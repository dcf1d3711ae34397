package naming

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SortSource selects the key Sequence orders the batch by.
type SortSource string

const (
	SortByName                SortSource = "name"
	SortByPath                SortSource = "path"
	SortBySize                SortSource = "size"
	SortByCreationDate        SortSource = "fs_creation"
	SortByModificationDate    SortSource = "fs_modification"
	SortByContentCreationDate SortSource = "content_creation"
	SortByWidth               SortSource = "width"
	SortByHeight              SortSource = "height"
)

var sortSources = []SortSource{
	SortByName, SortByPath, SortBySize, SortByCreationDate,
	SortByModificationDate, SortByContentCreationDate, SortByWidth, SortByHeight,
}

// ParseSortSource validates s as a SortSource name.
func ParseSortSource(s string) (SortSource, error) {
	v := SortSource(strings.ToLower(strings.TrimSpace(s)))
	for _, src := range sortSources {
		if v == src {
			return v, nil
		}
	}
	return "", errors.Errorf("invalid sort source %q", s)
}

// Sequence replaces names with consecutive numbers Start, Start+Step, ...
// in the order given by Sort. Padding > 0 zero-pads to that width.
type Sequence struct {
	Sort    SortSource
	Start   int
	Step    int
	Padding int

	numbers map[*FileRecord]int
}

// Prepare sorts records (stable, missing values first) and assigns the
// numbers. The returned slice is the sorted batch.
func (t *Sequence) Prepare(records []*FileRecord) []*FileRecord {
	sorted := make([]*FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessBy(t.Sort, sorted[i], sorted[j])
	})

	t.numbers = make(map[*FileRecord]int, len(sorted))
	n := t.Start
	for _, r := range sorted {
		t.numbers[r] = n
		n += t.Step
	}
	return sorted
}

func (t *Sequence) Apply(r *FileRecord) {
	n, ok := t.numbers[r]
	if !ok {
		return
	}
	if t.Padding > 0 {
		r.NewName = fmt.Sprintf("%0*d", t.Padding, n)
	} else {
		r.NewName = strconv.Itoa(n)
	}
}

func lessBy(src SortSource, a, b *FileRecord) bool {
	switch src {
	case SortByPath:
		return a.Path < b.Path
	case SortBySize:
		return a.Size < b.Size
	case SortByCreationDate:
		return lessTime(a.FsCreationDate, b.FsCreationDate)
	case SortByModificationDate:
		return lessTime(a.FsModificationDate, b.FsModificationDate)
	case SortByContentCreationDate:
		return lessTime(a.ContentCreationDate(), b.ContentCreationDate())
	case SortByWidth:
		return lessInt(a.Width(), b.Width())
	case SortByHeight:
		return lessInt(a.Height(), b.Height())
	default:
		return a.Name < b.Name
	}
}

// Nil sorts before any value.
func lessTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	return a.Before(*b)
}

func lessInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	return *a < *b
}
