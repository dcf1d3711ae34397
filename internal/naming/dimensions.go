package naming

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DimensionSide selects what one side of the dimensions fragment shows.
type DimensionSide string

const (
	SideNone   DimensionSide = "do_not_use"
	SideWidth  DimensionSide = "width"
	SideHeight DimensionSide = "height"
)

// ParseDimensionSide validates s as a DimensionSide name.
func ParseDimensionSide(s string) (DimensionSide, error) {
	v := DimensionSide(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SideNone, SideWidth, SideHeight:
		return v, nil
	}
	return "", errors.Errorf("invalid dimension side %q", s)
}

// ImageDimensions adds "<left><DimensionSeparator><right>", for example
// "1920x1080", to the name.
type ImageDimensions struct {
	noPrepare
	Left, Right        DimensionSide
	Position           Position // begin, end or replace
	DimensionSeparator string   // defaults to "x"
	NameSeparator      string
}

func (t *ImageDimensions) Apply(r *FileRecord) {
	if unusedSide(t.Left) && unusedSide(t.Right) {
		return
	}
	w, h := r.Width(), r.Height()
	if w == nil && h == nil {
		return
	}

	left, right := sideValue(t.Left, w, h), sideValue(t.Right, w, h)
	var text string
	switch {
	case left == "":
		text = right
	case right == "":
		text = left
	default:
		sep := t.DimensionSeparator
		if sep == "" {
			sep = "x"
		}
		text = left + sep + right
	}
	if text == "" {
		return
	}
	r.NewName = place(t.Position, r.Name, text, t.NameSeparator)
}

func sideValue(side DimensionSide, w, h *int) string {
	switch {
	case side == SideWidth && w != nil:
		return strconv.Itoa(*w)
	case side == SideHeight && h != nil:
		return strconv.Itoa(*h)
	}
	return ""
}

func unusedSide(s DimensionSide) bool { return s == "" || s == SideNone }
