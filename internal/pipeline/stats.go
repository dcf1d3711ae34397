package pipeline

import "github.com/backmassage/renamer/internal/naming"

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total          int // Discovered files.
	NeedRename     int
	Unchanged      int
	Failed         int // Unreadable files plus plans with an error outcome.
	MetadataErrors int
	TotalBytes     int64
}

// count adds one plan to the counters.
func (s *RunStats) count(p naming.RenamePlan) {
	switch {
	case p.HasError:
		s.Failed++
	case p.NeedRename:
		s.NeedRename++
	default:
		s.Unchanged++
	}
}

// OK reports whether the run produced no failures.
func (s *RunStats) OK() bool { return s.Failed == 0 }
