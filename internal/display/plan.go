package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/term"
)

// PrintPlan writes plans to w in the requested format.
func PrintPlan(w io.Writer, plans []naming.RenamePlan, format config.OutputFormat) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plans); err != nil {
			return errors.Wrap(err, "encode plan as yaml")
		}
		return errors.Wrap(enc.Close(), "encode plan as yaml")
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(plans), "encode plan as json")
	default:
		printPlanTable(w, plans)
		return nil
	}
}

// status labels per outcome, also used to pick the row color.
func planStatus(p naming.RenamePlan) (label, color string) {
	switch {
	case p.HasError:
		return "error", term.Red
	case p.NeedRename:
		return "rename", term.Green
	default:
		return "keep", term.Dim
	}
}

func printPlanTable(w io.Writer, plans []naming.RenamePlan) {
	oldW, newW := len("Old name"), len("New name")
	for _, p := range plans {
		oldW = max(oldW, utf8.RuneCountInString(p.OldName))
		newW = max(newW, utf8.RuneCountInString(p.NewName))
	}

	fmt.Fprintf(w, "%s  %s  %s\n", pad("Old name", oldW), pad("New name", newW), "Status")
	fmt.Fprintf(w, "%s  %s  %s\n", dashes(oldW), dashes(newW), dashes(len("Status")))
	for _, p := range plans {
		label, color := planStatus(p)
		fmt.Fprintf(w, "%s  %s  %s\n", pad(p.OldName, oldW), pad(p.NewName, newW), term.Paint(color, label))
	}
}

// pad left-aligns s in width runes. Colors are applied after padding so
// escape sequences never break the alignment.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func dashes(n int) string { return strings.Repeat("-", n) }
