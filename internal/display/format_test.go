package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical photo 3.2 MiB", 3355443, "3.2 MiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatDimensions(t *testing.T) {
	w, h := 1920, 1080
	assert.Equal(t, "1920x1080", FormatDimensions(&w, &h))
	assert.Equal(t, "-", FormatDimensions(&w, nil))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 6, 8, 15, 30, 45, 0, time.UTC)
	assert.Equal(t, "2024-06-08 15:30:45", FormatTime(&ts))
	assert.Equal(t, "-", FormatTime(nil))
}
