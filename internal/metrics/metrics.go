// SPDX-License-Identifier: EPL-2.0

// Package metrics instruments the processing pipeline with Prometheus
// collectors. The command writes them to a textfile for node_exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for voxclean. Stage labels are
// whatever the processor reports.
type Metrics struct {
	ClipsProcessed prometheus.Counter
	PipelineErrors *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	Conversions    *prometheus.CounterVec
	CaptureDrift   prometheus.Histogram

	registry *prometheus.Registry
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers every collector on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ClipsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxclean_clips_processed_total",
			Help: "Total number of clips that went through the whole pipeline",
		}),
		PipelineErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voxclean_pipeline_errors_total",
			Help: "Total number of pipeline failures by stage",
		}, []string{"stage"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voxclean_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 9),
		}, []string{"stage"}),
		Conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voxclean_conversions_total",
			Help: "Total number of export conversions by target format and result",
		}, []string{"format", "result"}),
		CaptureDrift: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxclean_capture_drift_seconds",
			Help:    "Wall-clock capture length minus nominal clip duration",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
		registry: reg,
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveStage records the duration of a stage started at start.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// ClipProcessed counts a clip that completed the pipeline.
func (m *Metrics) ClipProcessed() { m.ClipsProcessed.Inc() }

// ObserveDrift records how far a real-time capture overran the clip.
func (m *Metrics) ObserveDrift(d time.Duration) { m.CaptureDrift.Observe(d.Seconds()) }

// StageFailed counts a failure of stage.
func (m *Metrics) StageFailed(stage string) {
	m.PipelineErrors.WithLabelValues(stage).Inc()
}

// Conversion counts an export attempt.
func (m *Metrics) Conversion(format string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Conversions.WithLabelValues(format, result).Inc()
}

// WriteTextfile writes the current values in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
