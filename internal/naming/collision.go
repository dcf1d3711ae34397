package naming

import (
	"fmt"
	"strconv"
)

// ResolveCollisions appends " (NN)" counters to proposed names that are
// shared by more than one record, so every record that is actually being
// renamed ends up with a unique full name. Records keeping their original
// name are never touched. Order is preserved and extensions never change.
//
// The counter width is the digit count of the group size, and the counter
// keeps running across a group until a free name is found.
func ResolveCollisions(records []*FileRecord) []*FileRecord {
	groups := make(map[string][]*FileRecord)
	var order []string
	used := make(map[string]bool, len(records))

	for _, r := range records {
		name := r.NewFullName()
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], r)
		used[name] = true
	}

	for _, name := range order {
		group := groups[name]
		if len(group) < 2 {
			continue
		}

		width := len(strconv.Itoa(len(group)))
		counter := 1
		for _, r := range group {
			if !r.IsRenamed() {
				continue
			}
			for {
				suffix := fmt.Sprintf(" (%0*d)", width, counter)
				counter++
				candidate := FullName(r.NewName+suffix, r.NewExtension)
				if !used[candidate] {
					used[candidate] = true
					r.NewName += suffix
					break
				}
			}
		}
	}
	return records
}
