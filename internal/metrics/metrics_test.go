package metrics

import (
	"errors"
	"testing"
	"time"
)

type captureBackend struct {
	counters  map[string]float64
	durations map[string]float64
	labels    map[string]Labels
	flushed   int
}

func newCapture() *captureBackend {
	return &captureBackend{
		counters:  map[string]float64{},
		durations: map[string]float64{},
		labels:    map[string]Labels{},
	}
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters[name] += delta
	c.labels[name] = labels
}

func (c *captureBackend) ObserveDuration(name string, seconds float64, labels Labels) {
	c.durations[name] = seconds
	c.labels[name] = labels
}

func (c *captureBackend) Flush() error {
	c.flushed++
	return nil
}

func TestRecordStage(t *testing.T) {
	cap := newCapture()
	SetBackend(cap)
	defer SetBackend(nopBackend{})

	RecordStage("nightly", "coerce", nil, 250*time.Millisecond)
	if cap.counters["pipeline_stage_total"] != 1 {
		t.Fatalf("stage counter = %v", cap.counters)
	}
	if cap.labels["pipeline_stage_total"]["status"] != "success" {
		t.Fatalf("labels = %#v", cap.labels["pipeline_stage_total"])
	}
	if cap.durations["pipeline_stage_duration_seconds"] != 0.25 {
		t.Fatalf("duration = %v", cap.durations)
	}

	RecordStage("nightly", "coerce", errors.New("boom"), time.Second)
	if cap.labels["pipeline_stage_total"]["status"] != "failure" {
		t.Fatalf("failure status not recorded: %#v", cap.labels["pipeline_stage_total"])
	}
}

func TestRecordRowsSkipsNonPositive(t *testing.T) {
	cap := newCapture()
	SetBackend(cap)
	defer SetBackend(nopBackend{})

	RecordRows("nightly", "raw_products", 0)
	RecordRows("nightly", "raw_products", -3)
	if len(cap.counters) != 0 {
		t.Fatalf("non-positive deltas should be ignored: %#v", cap.counters)
	}
	RecordRows("nightly", "raw_products", 12)
	if cap.counters["pipeline_rows_total"] != 12 {
		t.Fatalf("rows counter = %v", cap.counters)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	cap := newCapture()
	SetBackend(cap)
	defer SetBackend(nopBackend{})

	SetBackend(nil)
	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if cap.flushed != 1 {
		t.Fatalf("nil SetBackend should keep existing backend; flushed=%d", cap.flushed)
	}
}
