package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "renamer.log")

	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Info("to file %d", 1)
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "to file 1", event["message"])
}

func TestLogger_ConsoleLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut, nil, false, false)

	l.Info("hello")
	l.Success("done")
	l.Warn("careful")
	l.Error("broken")
	l.Debug("hidden")

	stdout := out.String()
	assert.Contains(t, stdout, "[INFO] hello")
	assert.Contains(t, stdout, "[SUCCESS] done")
	assert.Contains(t, stdout, "[WARN] careful")
	assert.NotContains(t, stdout, "broken")
	assert.NotContains(t, stdout, "hidden")
	assert.Contains(t, errOut.String(), "[ERROR] broken")
}

func TestLogger_VerboseShowsDebug(t *testing.T) {
	var out bytes.Buffer
	l := New(&out, &out, nil, false, true)
	l.Debug("details %s", "here")
	assert.Contains(t, out.String(), "[DEBUG] details here")
}

func TestLogger_SinkGetsJSON(t *testing.T) {
	var out, sink bytes.Buffer
	l := New(&out, &out, &sink, true, false)
	l.Success("ok")
	l.Warn("w")

	lines := strings.Split(strings.TrimSpace(sink.String()), "\n")
	require.Len(t, lines, 2)
	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "success", first["level"])
	assert.Equal(t, "ok", first["message"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	assert.NoError(t, l.Close())
}
