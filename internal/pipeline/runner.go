package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/backmassage/renamer/internal/batch"
	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/fileops"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/metrics"
	"github.com/backmassage/renamer/internal/naming"
)

// Env carries the collaborators of a run. Zero fields fall back to the
// OS filesystem, no extraction, a discarding logger, no metrics and no
// progress output.
type Env struct {
	Fs        afero.Fs
	Extractor naming.Extractor
	Log       *logging.Logger
	Metrics   *metrics.Metrics
	// Progress returns the sink for a stage.
	Progress func(stage string) batch.ProgressFunc
}

func (e Env) progress(stage string) batch.ProgressFunc {
	if e.Progress == nil {
		return nil
	}
	return e.Progress(stage)
}

func (e Env) withDefaults() Env {
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.Log == nil {
		e.Log = logging.Nop()
	}
	return e
}

// Result is the outcome of Run.
type Result struct {
	Plans []naming.RenamePlan
	Stats RunStats
}

// Run is the top-level batch entry point. cfg must have been validated.
// The returned error is reserved for failures that stop the whole batch
// (unreadable inputs, cancellation); per-file problems end up in the plans
// and the stats.
func Run(ctx context.Context, cfg *config.Config, env Env) (Result, error) {
	env = env.withDefaults()
	tr, err := cfg.Transform()
	if err != nil {
		return Result{}, err
	}

	records, stats, err := buildRecords(ctx, cfg, env)
	if err != nil {
		return Result{Stats: stats}, err
	}
	logBatchHeader(cfg, env.Log, &stats)

	start := time.Now()
	records = batch.Command[*naming.FileRecord, *naming.FileRecord]{
		Preprocess: tr.Prepare,
		Process: func(r *naming.FileRecord) *naming.FileRecord {
			tr.Apply(r)
			return r
		},
		Recovered: func(r *naming.FileRecord, v interface{}) {
			env.Log.Error("Naming %s crashed: %v", filepath.Base(r.Path), v)
		},
		Workers: cfg.Workers,
	}.ExecuteContext(ctx, records, env.progress(metrics.StageTransform))
	env.Metrics.ObserveStage(metrics.StageTransform, start)
	if err := ctx.Err(); err != nil {
		return Result{Stats: stats}, err
	}
	records = dropCrashed(records, &stats)

	start = time.Now()
	plans := batch.Command[*naming.FileRecord, naming.RenamePlan]{
		Preprocess: naming.ResolveCollisions,
		Process:    naming.DerivePlan,
		Recovered: func(r *naming.FileRecord, v interface{}) {
			env.Log.Error("Planning %s crashed: %v", filepath.Base(r.Path), v)
		},
		Workers: cfg.Workers,
	}.ExecuteContext(ctx, records, env.progress(metrics.StagePlan))
	env.Metrics.ObserveStage(metrics.StagePlan, start)
	if err := ctx.Err(); err != nil {
		return Result{Stats: stats}, err
	}

	kept := plans[:0]
	for _, p := range plans {
		if p.Record == nil {
			// Crashed in DerivePlan; already logged.
			stats.Failed++
			continue
		}
		kept = append(kept, p)
		stats.count(p)
		env.Metrics.CountOutcome(string(p.Outcome))
		if p.HasError {
			env.Log.Error("%s", p.Error)
		}
	}

	logSummary(env.Log, &stats)
	return Result{Plans: kept, Stats: stats}, nil
}

// dropCrashed removes the nil results a batch leaves for items whose
// processing panicked, counting each as failed.
func dropCrashed(records []*naming.FileRecord, stats *RunStats) []*naming.FileRecord {
	kept := records[:0]
	for _, r := range records {
		if r == nil {
			stats.Failed++
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Inspect discovers files and extracts their metadata without proposing
// any names.
func Inspect(ctx context.Context, cfg *config.Config, env Env) ([]*naming.FileRecord, RunStats, error) {
	env = env.withDefaults()
	return buildRecords(ctx, cfg, env)
}

// built is the per-file result of the record stage.
type built struct {
	path   string
	record *naming.FileRecord
	err    error
}

// buildRecords discovers the inputs and builds one record per readable
// file, in discovery order. Unreadable files are logged and counted.
func buildRecords(ctx context.Context, cfg *config.Config, env Env) ([]*naming.FileRecord, RunStats, error) {
	var stats RunStats

	start := time.Now()
	files, err := Discover(env.Fs, cfg.Paths, cfg.Recursive)
	env.Metrics.ObserveStage(metrics.StageDiscover, start)
	if err != nil {
		return nil, stats, errors.Wrap(err, "file discovery failed")
	}
	stats.Total = len(files)
	env.Log.Debug("Discovered %d files", len(files))

	ops := fileops.New(env.Fs)
	start = time.Now()
	results := batch.Command[string, built]{
		Process: func(path string) built {
			r, err := naming.BuildRecord(ops, env.Extractor, path)
			return built{path: path, record: r, err: err}
		},
		Recovered: func(path string, v interface{}) {
			env.Log.Error("Reading %s crashed: %v", path, v)
		},
		Workers: cfg.Workers,
	}.ExecuteContext(ctx, files, env.progress(metrics.StageExtract))
	env.Metrics.ObserveStage(metrics.StageExtract, start)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	records := make([]*naming.FileRecord, 0, len(results))
	for _, b := range results {
		if b.record == nil && b.err == nil {
			// Crashed; logged by the batch hook.
			stats.Failed++
			continue
		}
		if b.err != nil {
			env.Log.Error("Cannot read %s: %v", b.path, b.err)
			stats.Failed++
			continue
		}
		r := b.record
		stats.TotalBytes += r.Size
		if r.MetadataErr != nil {
			stats.MetadataErrors++
			env.Metrics.CountMetadataError(handlerName(env.Extractor, r))
			env.Log.Warn("No metadata for %s: %v", filepath.Base(r.Path), r.MetadataErr)
		}
		records = append(records, r)
	}
	return records, stats, nil
}

// handlerLookup is implemented by *metadata.Chain.
type handlerLookup interface {
	HandlerFor(ext string) metadata.Handler
}

func handlerName(ex naming.Extractor, r *naming.FileRecord) string {
	if h, ok := ex.(handlerLookup); ok {
		return h.HandlerFor(filepath.Ext(r.Path)).Name()
	}
	return "unknown"
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files (%s)", stats.Total, display.FormatBytes(stats.TotalBytes))
	log.Info("Mode: %s", cfg.Mode)
	if cfg.Recursive {
		log.Debug("Recursive discovery enabled")
	}
	if stats.MetadataErrors > 0 {
		log.Warn("%d files without usable metadata", stats.MetadataErrors)
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d to rename, %d unchanged, %d failed", stats.NeedRename, stats.Unchanged, stats.Failed)
	if stats.OK() {
		log.Success("Plan is complete")
	} else {
		log.Warn("Plan has %d failed entries", stats.Failed)
	}
}
