package display

import (
	"fmt"
	"io"

	"github.com/backmassage/renamer/internal/term"
)

const banner = ` _ __ ___ _ __   __ _ _ __ ___   ___ _ __
| '__/ _ \ '_ \ / _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \ '__|
| | |  __/ | | | (_| | | | | | |  __/ |
|_|  \___|_| |_|\__,_|_| |_| |_|\___|_|
`

// PrintBanner prints the ASCII art banner and version, in cyan when colors
// are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Paint(term.Cyan, banner))
	fmt.Fprintf(w, "  v%s\n\n", version)
}
