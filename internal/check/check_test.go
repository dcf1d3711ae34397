package check

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/decode"
	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/probe"
)

type recorder struct {
	lines map[string][]string
}

func newRecorder() *recorder { return &recorder{lines: map[string][]string{}} }

func (r *recorder) add(level, f string, a ...interface{}) {
	r.lines[level] = append(r.lines[level], fmt.Sprintf(f, a...))
}

func (r *recorder) Info(f string, a ...interface{})    { r.add("info", f, a...) }
func (r *recorder) Success(f string, a ...interface{}) { r.add("success", f, a...) }
func (r *recorder) Warn(f string, a ...interface{})    { r.add("warn", f, a...) }
func (r *recorder) Error(f string, a ...interface{})   { r.add("error", f, a...) }

var missingProber = &probe.Prober{Binary: "/nonexistent/renamer-ffprobe"}

func TestSupported(t *testing.T) {
	router := decode.NewRouter(afero.NewMemMapFs())
	chain := metadata.DefaultChain(router, nil)

	byExt := map[string]Support{}
	for _, s := range Supported(router, chain) {
		byExt[s.Ext] = s
	}

	jpg := byExt["jpg"]
	assert.Equal(t, "jpeg", jpg.Handler)
	assert.True(t, jpg.Readable())

	mkv, ok := byExt["mkv"]
	require.True(t, ok)
	assert.Equal(t, "matroska", mkv.Handler)
	assert.False(t, mkv.Readable())

	assert.Equal(t, "wav", byExt["wav"].Handler)
}

func TestRunCheck_WithoutFFprobe(t *testing.T) {
	router := decode.NewRouter(afero.NewMemMapFs())
	log := newRecorder()

	RunCheck(log, missingProber, router, metadata.DefaultChain(router, nil))

	require.NotEmpty(t, log.lines["info"])
	assert.Equal(t, "=== System Check ===", log.lines["info"][0])
	require.Len(t, log.lines["warn"], 1)
	assert.Contains(t, log.lines["warn"][0], "ffprobe not found")
	require.Len(t, log.lines["error"], 1)
	assert.Equal(t, "No decoder for: mkv, webm", log.lines["error"][0])
	assert.Empty(t, log.lines["success"])
}

func TestFFprobeVersion_NotFound(t *testing.T) {
	_, err := FFprobeVersion(context.Background(), missingProber)
	assert.True(t, errors.Is(err, ErrFFprobeNotFound))
}

func TestFirstLine(t *testing.T) {
	out := "ffprobe version 6.1.1 Copyright (c) 2007-2023\nbuilt with gcc 13\n"
	assert.Equal(t, "ffprobe version 6.1.1 Copyright (c) 2007-2023", firstLine(out))
	assert.Equal(t, "single", firstLine("  single  "))
	assert.Equal(t, "", firstLine(""))
}
