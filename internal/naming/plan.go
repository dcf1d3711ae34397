package naming

import (
	"fmt"
	"strings"
)

// Outcome is the state of a planned rename.
type Outcome string

const (
	OutcomeNoActions       Outcome = "no_actions_happen"
	OutcomeRenamed         Outcome = "renamed_without_errors"
	OutcomeNotNeeded       Outcome = "not_renamed_because_not_needed"
	OutcomeNotRenamedError Outcome = "not_renamed_because_of_error"
)

// RenamePlan is the derived, read-only view of one record. It is never
// persisted; derive it again after any proposal change.
type RenamePlan struct {
	Record     *FileRecord `json:"-" yaml:"-"`
	OldName    string      `json:"old_name" yaml:"old_name"`
	NewName    string      `json:"new_name" yaml:"new_name"`
	NeedRename bool        `json:"need_rename" yaml:"need_rename"`
	Dir        string      `json:"dir" yaml:"dir"`
	HasError   bool        `json:"has_error,omitempty" yaml:"has_error,omitempty"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
	Outcome    Outcome     `json:"outcome" yaml:"outcome"`
}

// DerivePlan computes the plan of r. The directory is r.Path minus the
// old full name; when the path does not end with that name the plan
// carries an error instead of failing.
func DerivePlan(r *FileRecord) RenamePlan {
	p := RenamePlan{
		Record:     r,
		OldName:    r.OldFullName(),
		NewName:    r.NewFullName(),
		NeedRename: r.IsRenamed(),
	}

	if !strings.HasSuffix(r.Path, p.OldName) {
		p.HasError = true
		p.Error = fmt.Sprintf("Check if the file name (%s) and absolute path (%s) is correct. File Name (%s) is not found in the path (%s)",
			p.OldName, r.Path, p.OldName, r.Path)
		p.Outcome = OutcomeNotRenamedError
		return p
	}

	p.Dir = strings.TrimSuffix(r.Path, p.OldName)
	if p.NeedRename {
		p.Outcome = OutcomeNoActions
	} else {
		p.Outcome = OutcomeNotNeeded
	}
	return p
}
