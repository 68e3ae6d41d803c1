package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	generations        = newCounterVec("feature", "source", "reason")
	requests           = newCounterVec("route", "status")
	generationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 20000, 30000})
)

// IncGeneration counts one orchestrated generation for a feature by provenance
// ("ai" or "fallback") and reason.
func IncGeneration(feature, source, reason string) {
	generations.Inc(feature, source, reason)
}

// ObserveGenerationDurationMs records a provider call duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// GenerationCount returns the current counter value, mainly for tests.
func GenerationCount(feature, source, reason string) uint64 {
	return generations.Get(feature, source, reason)
}

// IncRequest counts a completed HTTP request by route template and status
// class ("2xx", "4xx", ...).
func IncRequest(route string, status int) {
	requests.Inc(routeLabel(route), statusClass(status))
}

// RequestCount returns the current request counter value, mainly for tests.
func RequestCount(route string, status int) uint64 {
	return requests.Get(routeLabel(route), statusClass(status))
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
	writeCounterVec(&buf, "generation_total", "Generations by feature, provenance and reason", generations)
	writeCounterVec(&buf, "http_requests_total", "Completed requests by route and status class", requests)
	writeHistogram(&buf, "generation_provider_duration_ms", "Provider call duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

// counterVec is a counter keyed by an ordered tuple of label values.
type counterVec struct {
	mu     sync.Mutex
	labels []string
	values map[string]*counterSample
}

type counterSample struct {
	labelValues []string
	value       uint64
}

func newCounterVec(labels ...string) *counterVec {
	return &counterVec{labels: labels, values: make(map[string]*counterSample)}
}

func (v *counterVec) Inc(values ...string) {
	key := strings.Join(values, "\x00")
	v.mu.Lock()
	sample, ok := v.values[key]
	if !ok {
		sample = &counterSample{labelValues: append([]string(nil), values...)}
		v.values[key] = sample
	}
	sample.value++
	v.mu.Unlock()
}

func (v *counterVec) Get(values ...string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if sample, ok := v.values[strings.Join(values, "\x00")]; ok {
		return sample.value
	}
	return 0
}

func (v *counterVec) Snapshot() []counterSample {
	v.mu.Lock()
	out := make([]counterSample, 0, len(v.values))
	for _, sample := range v.values {
		out = append(out, counterSample{labelValues: sample.labelValues, value: sample.value})
	}
	v.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].labelValues, out[j].labelValues
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out
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

// Observe counts value in the first bucket whose bound it does not exceed;
// writeHistogram accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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

func writeCounterVec(buf *bytes.Buffer, name, help string, v *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, s := range v.Snapshot() {
		pairs := make([]string, len(v.labels))
		for i, label := range v.labels {
			pairs[i] = fmt.Sprintf("%s=%q", label, s.labelValues[i])
		}
		fmt.Fprintf(buf, "%s{%s} %d\n", name, strings.Join(pairs, ","), s.value)
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

func routeLabel(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
