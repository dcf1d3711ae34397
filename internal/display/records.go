package display

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/backmassage/renamer/internal/naming"
	"github.com/backmassage/renamer/internal/term"
)

var recordHeader = []string{"File", "Size", "Created", "Modified", "Content date", "Dimensions", "Audio"}

// PrintRecords writes the extracted facts of each record as an aligned
// table. Records whose metadata failed are flagged after the row.
func PrintRecords(w io.Writer, records []*naming.FileRecord) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.OldFullName(),
			FormatBytes(r.Size),
			FormatTime(r.FsCreationDate),
			FormatTime(r.FsModificationDate),
			FormatTime(r.ContentCreationDate()),
			FormatDimensions(r.Width(), r.Height()),
			audioSummary(r),
		})
	}

	widths := make([]int, len(recordHeader))
	for i, h := range recordHeader {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	writeRow(w, recordHeader, widths)
	sep := make([]string, len(widths))
	for i, n := range widths {
		sep[i] = dashes(n)
	}
	writeRow(w, sep, widths)
	for i, row := range rows {
		writeRow(w, row, widths)
		if err := records[i].MetadataErr; err != nil {
			fmt.Fprintf(w, "  %s\n", term.Paint(term.Yellow, "! "+err.Error()))
		}
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		if i == len(cells)-1 {
			fmt.Fprint(w, c)
		} else {
			fmt.Fprint(w, pad(c, widths[i]))
		}
	}
	fmt.Fprintln(w)
}

// audioSummary renders "Artist - Title (Album, Year)" with the missing
// parts left out, or "-".
func audioSummary(r *naming.FileRecord) string {
	md := r.Metadata
	if md == nil || (md.Artist == "" && md.Song == "" && md.Album == "") {
		return "-"
	}
	s := md.Artist
	if md.Song != "" {
		if s != "" {
			s += " - "
		}
		s += md.Song
	}
	switch {
	case md.Album != "" && md.Year != "":
		s += " (" + md.Album + ", " + md.Year + ")"
	case md.Album != "":
		s += " (" + md.Album + ")"
	}
	return s
}
