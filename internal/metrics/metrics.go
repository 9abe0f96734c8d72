// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// The global backend defaults to a no-op implementation so instrumentation is
// always safe to call; a real backend (e.g. the Pushgateway implementation in
// metrics/prompush) is installed by the CLI when requested. The pattern
// mirrors the storage abstraction: the pipeline depends only on this package,
// concrete metric systems live in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, seconds float64, labels Labels)
	// Flush pushes buffered metrics if the backend needs it.
	Flush() error
}

// nopBackend keeps metrics optional.
type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStage measures one pipeline stage execution: a success/failure
// counter plus its duration.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter("pipeline_stage_total", 1, lbls)
	backend.ObserveDuration("pipeline_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows counts rows written to a store table.
func RecordRows(job, table string, n int64) {
	if n <= 0 {
		return
	}
	backend.IncCounter("pipeline_rows_total", float64(n), Labels{"job": job, "table": table})
}
