package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

const progressWidth = 80

// Progress renders batch progress as one \r-overwritten line. On a
// non-TTY it stays silent; the log lines are enough breadcrumbs there.
type Progress struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	label string
}

// NewProgress returns a progress line labelled label.
func NewProgress(w io.Writer, tty bool, label string) *Progress {
	return &Progress{w: w, tty: tty, label: label}
}

// Update matches batch.ProgressFunc: (0, 0) clears the line.
func (p *Progress) Update(current, max int) {
	if !p.tty {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if max == 0 {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", progressWidth))
		return
	}
	pct := current * 100 / max
	status := fmt.Sprintf("  %s [%d/%d] %d%%", p.label, current, max, pct)
	if n := utf8.RuneCountInString(status); n < progressWidth {
		status += strings.Repeat(" ", progressWidth-n)
	}
	fmt.Fprintf(p.w, "\r%s", status)
}
