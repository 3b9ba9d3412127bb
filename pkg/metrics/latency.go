// Package metrics records per-operation latency for the order cache
// façade using local HDR histograms, the same approach the teacher
// declared a dependency on but never wired: no exporter, no network
// hop, just a bounded-memory percentile estimator sampled in-process.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minValueMicros int64 = 1
	maxValueMicros int64 = 60_000_000 // 60s, generous ceiling for a pathological GC pause
	sigFigures     int   = 3
)

// Stats is a point-in-time percentile snapshot of one operation's
// recorded latencies, in microseconds.
type Stats struct {
	Count int64
	P50   int64
	P90   int64
	P99   int64
	Max   int64
}

// Recorder tracks latency for a fixed set of named operations, one
// histogram per name, guarded by a mutex since the façade calls it from
// arbitrary goroutines.
type Recorder struct {
	mu         sync.Mutex
	histograms map[string]*hdrhistogram.Histogram
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{histograms: make(map[string]*hdrhistogram.Histogram)}
}

// Record adds one latency sample for operation.
func (r *Recorder) Record(operation string, d time.Duration) {
	micros := d.Microseconds()
	if micros < minValueMicros {
		micros = minValueMicros
	}
	if micros > maxValueMicros {
		micros = maxValueMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histograms[operation]
	if !ok {
		h = hdrhistogram.New(minValueMicros, maxValueMicros, sigFigures)
		r.histograms[operation] = h
	}
	_ = h.RecordValue(micros)
}

// Stats returns the current percentile snapshot for operation, or the
// zero Stats if nothing has been recorded for it yet.
func (r *Recorder) Stats(operation string) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.histograms[operation]
	if !ok {
		return Stats{}
	}
	return Stats{
		Count: h.TotalCount(),
		P50:   h.ValueAtQuantile(50),
		P90:   h.ValueAtQuantile(90),
		P99:   h.ValueAtQuantile(99),
		Max:   h.Max(),
	}
}

// Operations returns the set of operation names with at least one
// recorded sample, in unspecified order.
func (r *Recorder) Operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.histograms))
	for name := range r.histograms {
		out = append(out, name)
	}
	return out
}
