package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	invocationStartedTotal   atomic.Uint64
	invocationCompletedTotal atomic.Uint64
	invocationFailedTotal    atomic.Uint64
	invocationFallbackTotal  atomic.Uint64

	invocationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})

	selections = newLabeledCounter()
)

// IncInvocationStarted increments the started counter.
func IncInvocationStarted() {
	invocationStartedTotal.Add(1)
}

// IncInvocationCompleted increments the completed counter.
func IncInvocationCompleted() {
	invocationCompletedTotal.Add(1)
}

// IncInvocationFailed increments the failed counter.
func IncInvocationFailed() {
	invocationFailedTotal.Add(1)
}

// IncInvocationFallback counts responses that carried no text.
func IncInvocationFallback() {
	invocationFallbackTotal.Add(1)
}

// IncPromptSelected counts one selection of promptID for feature.
func IncPromptSelected(feature, promptID string) {
	selections.Inc(feature, promptID)
}

// ObserveInvocationDurationMs records an invocation duration in milliseconds.
func ObserveInvocationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	invocationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "invocation_started_total", "Total feature invocations started", invocationStartedTotal.Load())
	writeCounter(&buf, "invocation_completed_total", "Total feature invocations completed", invocationCompletedTotal.Load())
	writeCounter(&buf, "invocation_failed_total", "Total feature invocations failed", invocationFailedTotal.Load())
	writeCounter(&buf, "invocation_fallback_total", "Total invocations answered with the fallback text", invocationFallbackTotal.Load())
	writeHistogram(&buf, "invocation_duration_ms", "Invocation duration in milliseconds", invocationDuration.Snapshot())
	writeLabeledCounter(&buf, "prompt_selected_total", "Prompt variant selections", selections.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket that holds it; writeHistogram
// accumulates on output.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

type selectionKey struct {
	feature  string
	promptID string
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[selectionKey]uint64
}

type labeledSample struct {
	feature  string
	promptID string
	value    uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[selectionKey]uint64)}
}

func (l *labeledCounter) Inc(feature, promptID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[selectionKey{feature: feature, promptID: promptID}]++
}

func (l *labeledCounter) Snapshot() []labeledSample {
	l.mu.Lock()
	out := make([]labeledSample, 0, len(l.values))
	for k, v := range l.values {
		out = append(out, labeledSample{feature: k.feature, promptID: k.promptID, value: v})
	}
	l.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].feature != out[j].feature {
			return out[i].feature < out[j].feature
		}
		return out[i].promptID < out[j].promptID
	})
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help string, samples []labeledSample) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, s := range samples {
		fmt.Fprintf(buf, "%s{feature=%q,prompt_id=%q} %d\n", name, s.feature, s.promptID, s.value)
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
