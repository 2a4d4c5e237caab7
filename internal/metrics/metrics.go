package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PatternNone labels classifications that found no season/episode marker
const PatternNone = "none"

// Metrics holds digest and classification metrics.
// All Observe methods are safe to call on a nil *Metrics.
type Metrics struct {
	Digests          prometheus.Counter
	DigestErrors     prometheus.Counter
	DigestDuration   prometheus.Histogram
	Classifications  *prometheus.CounterVec
	OrganizeFiles    prometheus.Histogram
	OrganizeDuration prometheus.Histogram
}

// New creates and registers metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Digests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wsindex",
			Subsystem: "digest",
			Name:      "computed_total",
			Help:      "Total password digests computed.",
		}),
		DigestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wsindex",
			Subsystem: "digest",
			Name:      "errors_total",
			Help:      "Password digests that failed.",
		}),
		DigestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wsindex",
			Subsystem: "digest",
			Name:      "duration_seconds",
			Help:      "Duration of password digest computation.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wsindex",
			Subsystem: "classify",
			Name:      "files_total",
			Help:      "Classified file names by winning season/episode pattern.",
		}, []string{"pattern"}),
		OrganizeFiles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wsindex",
			Subsystem: "organize",
			Name:      "batch_files",
			Help:      "Number of files per organized search response.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		OrganizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wsindex",
			Subsystem: "organize",
			Name:      "duration_seconds",
			Help:      "Duration of organizing one search response.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	reg.MustRegister(
		m.Digests,
		m.DigestErrors,
		m.DigestDuration,
		m.Classifications,
		m.OrganizeFiles,
		m.OrganizeDuration,
	)

	return m
}

// ObserveDigest records one digest computation
func (m *Metrics) ObserveDigest(d time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DigestErrors.Inc()
		return
	}
	m.Digests.Inc()
	m.DigestDuration.Observe(d.Seconds())
}

// ObserveClassification records the winning pattern; "" means no match
func (m *Metrics) ObserveClassification(pattern string) {
	if m == nil {
		return
	}
	if pattern == "" {
		pattern = PatternNone
	}
	m.Classifications.WithLabelValues(pattern).Inc()
}

// ObserveOrganize records one organized batch
func (m *Metrics) ObserveOrganize(files int, d time.Duration) {
	if m == nil {
		return
	}
	m.OrganizeFiles.Observe(float64(files))
	m.OrganizeDuration.Observe(d.Seconds())
}
