// Package metrics counts planned renames and per-stage timings in a
// dedicated Prometheus registry, written out as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage names used as the "stage" label.
const (
	StageDiscover  = "discover"
	StageExtract   = "extract"
	StageTransform = "transform"
	StagePlan      = "plan"
)

// Metrics holds the run's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	reg *prometheus.Registry

	FilesTotal          *prometheus.CounterVec
	MetadataErrorsTotal *prometheus.CounterVec
	StageDuration       *prometheus.HistogramVec
}

// New registers all collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		reg: reg,
		FilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renamer_files_total",
				Help: "Files planned, by outcome",
			},
			[]string{"outcome"},
		),
		MetadataErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renamer_metadata_errors_total",
				Help: "Metadata extraction failures, by handler",
			},
			[]string{"handler"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "renamer_stage_duration_seconds",
				Help:    "Wall time of each pipeline stage",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"stage"},
		),
	}
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// CountOutcome increments the files counter for outcome.
func (m *Metrics) CountOutcome(outcome string) {
	if m == nil {
		return
	}
	m.FilesTotal.WithLabelValues(outcome).Inc()
}

// CountMetadataError increments the extraction failure counter.
func (m *Metrics) CountMetadataError(handler string) {
	if m == nil {
		return
	}
	m.MetadataErrorsTotal.WithLabelValues(handler).Inc()
}

// ObserveStage records how long stage took since start.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteFile writes the registry in the text exposition format. The file
// is replaced atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.reg), "write metrics to %s", path)
}
