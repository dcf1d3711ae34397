package pipeline

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/renamer/internal/batch"
	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/fileops"
	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/metrics"
	"github.com/backmassage/renamer/internal/naming"
)

const root = "/library"

func touch(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte("data"), 0o644))
	return path
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// --- Discover tests ---

func TestDiscover_TopLevelOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "b.jpg")
	touch(t, fs, "a.mp3")
	touch(t, fs, "nested/c.png")

	files, err := Discover(fs, []string{root}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3", "b.jpg"}, basenames(files))
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "Trip/Day 02/img1.jpg")
	touch(t, fs, "Trip/Day 01/img2.jpg")
	touch(t, fs, "Trip/Day 01/img1.jpg")

	files, err := Discover(fs, []string{root}, true)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.IsIncreasing(t, files)
}

func TestDiscover_FilesAndDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := touch(t, fs, "a.txt")
	touch(t, fs, "b.txt")

	files, err := Discover(fs, []string{a, root, a + "/"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, basenames(files))
}

func TestDiscover_Missing(t *testing.T) {
	_, err := Discover(afero.NewMemMapFs(), []string{"/nope"}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fileops.ErrFileNotFound))
}

func TestDiscover_EmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))
	files, err := Discover(fs, []string{root}, true)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// --- Run tests ---

// stubChain serves fixed metadata per base name through the real chain
// dispatch, so handler names reach the metrics.
func stubChain(byName map[string]*metadata.Metadata, failing map[string]bool) *metadata.Chain {
	dec := metadata.DecoderFunc(func(path string) (metadata.Directories, error) {
		base := filepath.Base(path)
		if failing[base] {
			return nil, errors.New("corrupt")
		}
		md := byName[base]
		if md == nil || md.Width == nil {
			return nil, nil
		}
		d := metadata.NewDirectory(metadata.DirJPEG)
		d.Set(metadata.TagImageWidth, strconv.Itoa(*md.Width))
		d.Set(metadata.TagImageHeight, strconv.Itoa(*md.Height))
		return metadata.Directories{d}, nil
	})
	return metadata.NewChain(metadata.NewImageHandler("jpeg", metadata.DirJPEG, dec, nil, "jpg"))
}

func baseConfig(mode config.Mode) config.Config {
	cfg := config.DefaultConfig()
	cfg.Paths = []string{root}
	cfg.Mode = mode
	cfg.Workers = 4
	return cfg
}

func TestRun_DimensionsWithCollisions(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "a.jpg")
	touch(t, fs, "b.jpg")
	touch(t, fs, "c.jpg")
	touch(t, fs, "broken.jpg")
	touch(t, fs, "readme.txt")

	w, h := 800, 600
	same := &metadata.Metadata{Width: &w, Height: &h}
	chain := stubChain(
		map[string]*metadata.Metadata{"a.jpg": same, "b.jpg": same, "c.jpg": same},
		map[string]bool{"broken.jpg": true},
	)

	cfg := baseConfig(config.ModeDimensions)
	cfg.Position = "replace"
	m := metrics.New()

	res, err := Run(context.Background(), &cfg, Env{Fs: fs, Extractor: chain, Metrics: m})
	require.NoError(t, err)
	require.Len(t, res.Plans, 5)

	byOld := map[string]naming.RenamePlan{}
	for _, p := range res.Plans {
		byOld[p.OldName] = p
	}
	assert.Equal(t, "800x600 (1).jpg", byOld["a.jpg"].NewName)
	assert.Equal(t, "800x600 (2).jpg", byOld["b.jpg"].NewName)
	assert.Equal(t, "800x600 (3).jpg", byOld["c.jpg"].NewName)
	assert.False(t, byOld["broken.jpg"].NeedRename)
	assert.False(t, byOld["readme.txt"].NeedRename)

	assert.Equal(t, RunStats{
		Total: 5, NeedRename: 3, Unchanged: 2, MetadataErrors: 1, TotalBytes: 20,
	}, res.Stats)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MetadataErrorsTotal.WithLabelValues("jpeg")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(string(naming.OutcomeNoActions))))
}

func TestRun_SequenceKeepsSortedOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "c.txt")
	touch(t, fs, "a.txt")
	touch(t, fs, "b.txt")

	cfg := baseConfig(config.ModeSequence)
	cfg.Padding = 2

	res, err := Run(context.Background(), &cfg, Env{Fs: fs})
	require.NoError(t, err)
	var got []string
	for _, p := range res.Plans {
		got = append(got, p.OldName+"->"+p.NewName)
	}
	assert.Equal(t, []string{"a.txt->01.txt", "b.txt->02.txt", "c.txt->03.txt"}, got)
}

func TestRun_ProgressPerStage(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "a.txt")
	touch(t, fs, "b.txt")

	var mu sync.Mutex
	finals := map[string][2]int{}
	starts := map[string][2]int{}
	env := Env{
		Fs: fs,
		Progress: func(stage string) batch.ProgressFunc {
			first := true
			return func(cur, max int) {
				mu.Lock()
				defer mu.Unlock()
				if first {
					starts[stage] = [2]int{cur, max}
					first = false
				}
				finals[stage] = [2]int{cur, max}
			}
		},
	}
	cfg := baseConfig(config.ModeAddText)
	cfg.Text = "x_"

	_, err := Run(context.Background(), &cfg, env)
	require.NoError(t, err)
	for _, stage := range []string{metrics.StageExtract, metrics.StageTransform, metrics.StagePlan} {
		assert.Equal(t, [2]int{0, 2}, starts[stage], stage)
		assert.Equal(t, [2]int{0, 0}, finals[stage], stage)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := baseConfig("nope")
	_, err := Run(context.Background(), &cfg, Env{Fs: afero.NewMemMapFs()})
	assert.Error(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	cfg := baseConfig(config.ModeAddText)
	_, err := Run(context.Background(), &cfg, Env{Fs: afero.NewMemMapFs()})
	assert.True(t, errors.Is(err, fileops.ErrFileNotFound))
}

func TestRun_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "a.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := baseConfig(config.ModeAddText)
	_, err := Run(ctx, &cfg, Env{Fs: fs})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestInspect(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "a.jpg")
	w, h := 10, 20
	chain := stubChain(map[string]*metadata.Metadata{"a.jpg": {Width: &w, Height: &h}}, nil)

	cfg := baseConfig(config.ModeAddText)
	records, stats, err := Inspect(context.Background(), &cfg, Env{Fs: fs, Extractor: chain})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 10, *records[0].Width())
	assert.Equal(t, 1, stats.Total)
	assert.False(t, records[0].IsRenamed())
}

// crashingExtractor panics for one base name and finds nothing elsewhere.
type crashingExtractor struct{ name string }

func (c crashingExtractor) Extract(path string) (*metadata.Metadata, error) {
	if filepath.Base(path) == c.name {
		panic("decoder bug")
	}
	return nil, nil
}

func TestRun_CrashingFileDoesNotAbortBatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "a.txt")
	touch(t, fs, "bad.txt")
	touch(t, fs, "c.txt")

	cfg := baseConfig(config.ModeAddText)
	cfg.Text = "x_"

	res, err := Run(context.Background(), &cfg, Env{Fs: fs, Extractor: crashingExtractor{name: "bad.txt"}})
	require.NoError(t, err)

	var got []string
	for _, p := range res.Plans {
		got = append(got, p.NewName)
	}
	assert.Equal(t, []string{"x_a.txt", "x_c.txt"}, got)
	assert.Equal(t, 1, res.Stats.Failed)
	assert.Equal(t, 2, res.Stats.NeedRename)
	assert.False(t, res.Stats.OK())
}

func TestRun_DotfileMetricsUseDispatchedHandler(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, ".jpg")
	chain := stubChain(nil, map[string]bool{".jpg": true})
	m := metrics.New()

	cfg := baseConfig(config.ModeAddText)
	res, err := Run(context.Background(), &cfg, Env{Fs: fs, Extractor: chain, Metrics: m})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.MetadataErrors)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MetadataErrorsTotal.WithLabelValues("jpeg")))
}

func TestDropCrashed(t *testing.T) {
	a, b := &naming.FileRecord{Name: "a"}, &naming.FileRecord{Name: "b"}
	var stats RunStats
	assert.Equal(t, []*naming.FileRecord{a, b}, dropCrashed([]*naming.FileRecord{nil, a, nil, b}, &stats))
	assert.Equal(t, 2, stats.Failed)
}
