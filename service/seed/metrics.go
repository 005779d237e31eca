package seed

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes seed and denormalize results for the node_exporter textfile
// collector. Each CLI run fills a fresh registry and writes it once.
type Metrics struct {
	registry    *prometheus.Registry
	rows        *prometheus.CounterVec
	batches     prometheus.Counter
	skipped     prometheus.Counter
	stepSeconds *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
	failures    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "rows_total",
			Help: "Rows written per table.",
		}, []string{"table"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "batches_total",
			Help: "Bulk insert calls.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "skipped_items_total",
			Help: "Items left out of the denormalized projection.",
		}),
		stepSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "step_seconds",
			Help: "Elapsed time per seed step.",
		}, []string{"step"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "duration_seconds",
			Help: "Elapsed time of the last run.",
		}, []string{"operation"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory", Subsystem: "seed", Name: "failures_total",
			Help: "Failed runs per phase.",
		}, []string{"phase"}),
	}
	m.registry.MustRegister(m.rows, m.batches, m.skipped, m.stepSeconds, m.duration, m.lastSuccess, m.failures)
	return m
}

// ObserveRun records a seed run. res may be partial when err is set.
func (m *Metrics) ObserveRun(res *Result, err error) {
	if res != nil {
		m.rows.WithLabelValues("categories").Add(float64(res.Categories))
		m.rows.WithLabelValues("suppliers").Add(float64(res.Suppliers))
		m.rows.WithLabelValues("warehouses").Add(float64(res.Warehouses))
		m.rows.WithLabelValues("items").Add(float64(res.Items))
		m.rows.WithLabelValues("item_attributes").Add(float64(res.Attributes))
		m.rows.WithLabelValues("items_denormalized").Add(float64(res.Denormalized))
		m.batches.Add(float64(res.Batches))
		m.skipped.Add(float64(res.Skipped))
		for _, st := range res.Steps {
			m.stepSeconds.WithLabelValues(st.Name).Set(st.Elapsed.Seconds())
		}
		m.duration.WithLabelValues("seed").Set(res.TotalTime.Seconds())
	}
	m.finish("seed", err)
}

// ObserveDenormalize records a standalone denormalization pass.
func (m *Metrics) ObserveDenormalize(res *DenormalizeResult, err error) {
	if res != nil {
		m.rows.WithLabelValues("items_denormalized").Add(float64(res.Written))
		m.batches.Add(float64(res.Batches))
		m.skipped.Add(float64(res.Skipped))
		m.duration.WithLabelValues("denormalize").Set(res.Elapsed.Seconds())
	}
	m.finish("denormalize", err)
}

func (m *Metrics) finish(operation string, err error) {
	if err == nil {
		m.lastSuccess.WithLabelValues(operation).Set(float64(time.Now().Unix()))
		return
	}
	phase := "unknown"
	var pe *PhaseError
	if errors.As(err, &pe) {
		phase = string(pe.Phase)
	}
	m.failures.WithLabelValues(phase).Inc()
}

// Registry returns the registry holding every seed metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
