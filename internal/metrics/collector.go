package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusCollector implements prometheus.Collector for service status.
// The hash primitives are probed on every scrape.
type StatusCollector struct {
	started   time.Time
	hashCheck func() error

	hashAvailable *prometheus.Desc
	uptime        *prometheus.Desc
	buildInfo     *prometheus.Desc

	version string
}

// NewStatusCollector creates a collector. hashCheck is typically
// digest.Available.
func NewStatusCollector(version string, started time.Time, hashCheck func() error) *StatusCollector {
	return &StatusCollector{
		started:   started,
		hashCheck: hashCheck,
		version:   version,

		hashAvailable: prometheus.NewDesc(
			"wsindex_hash_available",
			"1 if MD5 and SHA-1 are usable for password digests, 0 otherwise.",
			nil, nil,
		),
		uptime: prometheus.NewDesc(
			"wsindex_uptime_seconds",
			"Seconds since the service started.",
			nil, nil,
		),
		buildInfo: prometheus.NewDesc(
			"wsindex_build_info",
			"Build information, always 1.",
			[]string{"version"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hashAvailable
	ch <- c.uptime
	ch <- c.buildInfo
}

// Collect implements prometheus.Collector.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	available := 1.0
	if c.hashCheck != nil && c.hashCheck() != nil {
		available = 0
	}

	ch <- prometheus.MustNewConstMetric(c.hashAvailable, prometheus.GaugeValue, available)
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, time.Since(c.started).Seconds())
	ch <- prometheus.MustNewConstMetric(c.buildInfo, prometheus.GaugeValue, 1, c.version)
}
