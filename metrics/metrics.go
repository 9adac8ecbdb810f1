// Package metrics exports csvgen write statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oleg578/csvgen"
)

// Config controls metric naming.
type Config struct {
	Namespace string
	Subsystem string
	// DurationBuckets overrides the write duration histogram buckets, in seconds.
	DurationBuckets []float64
}

// Collector records csvgen writes as Prometheus metrics. It implements csvgen.Observer.
type Collector struct {
	registry *prometheus.Registry

	rows     *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ csvgen.Observer = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics on registry.
// If registry is nil a new one is created.
//
// Example:
//
//	collector := metrics.NewCollector(metrics.Config{}, nil)
//	gen := csvgen.New[Sample](csvgen.WithObserver(collector))
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "csvgen"
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
	}

	c := &Collector{
		registry: registry,
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "rows_written_total",
			Help:      "Data rows written, header excluded.",
		}, []string{"record"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "bytes_written_total",
			Help:      "Bytes of CSV output accepted by sinks.",
		}, []string{"record"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "write_errors_total",
			Help:      "Write calls that ended with an error.",
		}, []string{"record"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "write_duration_seconds",
			Help:      "Duration of write calls.",
			Buckets:   cfg.DurationBuckets,
		}, []string{"record"}),
	}

	registry.MustRegister(c.rows, c.bytes, c.errors, c.duration)
	return c
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveWrite implements csvgen.Observer.
func (c *Collector) ObserveWrite(stats csvgen.WriteStats) {
	c.rows.WithLabelValues(stats.Record).Add(float64(stats.Rows))
	c.bytes.WithLabelValues(stats.Record).Add(float64(stats.Bytes))
	c.duration.WithLabelValues(stats.Record).Observe(stats.Duration.Seconds())
	if stats.Err != nil {
		c.errors.WithLabelValues(stats.Record).Inc()
	}
}
