//go:build !darwin && !windows

package fileops

import (
	"os"
	"time"
)

// Birth time is not exposed through os.FileInfo here.
func birthTime(os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
