// Package metrics exports workload results in the Prometheus text format so
// a node_exporter textfile collector (or any scraper of .prom files) can pick
// them up after a batch of runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/hiot/internal/workload"
)

// Metrics holds the collectors for one CLI invocation. Each instance owns
// its registry.
type Metrics struct {
	registry *prometheus.Registry

	Counters *prometheus.GaugeVec
	Ratios   *prometheus.GaugeVec
	Duration *prometheus.HistogramVec
	Runs     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Counters: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hiot_workload_counter",
				Help: "Final value of a workload counter in the last run",
			},
			[]string{"workload", "counter"},
		),
		Ratios: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hiot_workload_ratio",
				Help: "Derived ratio reported by the last run",
			},
			[]string{"workload", "ratio"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hiot_workload_duration_seconds",
				Help:    "Wall time of workload runs",
				Buckets: []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"workload"},
		),
		Runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hiot_runs_total",
				Help: "Workload runs by outcome",
			},
			[]string{"workload", "status"},
		),
	}
}

// Observe records a completed run.
func (m *Metrics) Observe(s *workload.Summary, elapsed time.Duration) {
	for _, c := range s.Counters {
		m.Counters.WithLabelValues(s.Workload, c.Name).Set(float64(c.Value))
	}
	for _, r := range s.Ratios {
		m.Ratios.WithLabelValues(s.Workload, r.Name).Set(r.Value)
	}
	m.Duration.WithLabelValues(s.Workload).Observe(elapsed.Seconds())
	m.Runs.WithLabelValues(s.Workload, "ok").Inc()
}

// ObserveFailure records a run that returned an error.
func (m *Metrics) ObserveFailure(name string) {
	m.Runs.WithLabelValues(name, "error").Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every collected metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
