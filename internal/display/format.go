package display

import (
	"fmt"
	"strconv"
	"time"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(suffixes)-1; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDimensions renders "WxH", or "-" when either side is unknown.
func FormatDimensions(w, h *int) string {
	if w == nil || h == nil {
		return "-"
	}
	return strconv.Itoa(*w) + "x" + strconv.Itoa(*h)
}

// FormatTime renders a zone-naive timestamp, or "-" for nil.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
