package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fluxcdf"

// Metrics holds the Prometheus counters and histograms for a conversion run.
type Metrics struct {
	StationsConverted prometheus.Counter
	StationsFailed    *prometheus.CounterVec // labels: stage={request,extract,transform,load}

	// Column outcomes, summed over stations.
	ColumnsRetained   prometheus.Counter
	ColumnsExcluded   prometheus.Counter
	ColumnsUnresolved prometheus.Counter

	StationDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_converted_total",
			Help:      "Stations written to netCDF.",
		}),
		StationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_failed_total",
			Help:      "Stations whose conversion failed, by pipeline stage.",
		}, []string{"stage"}),
		ColumnsRetained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_retained_total",
			Help:      "Columns written as data variables.",
		}),
		ColumnsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_excluded_total",
			Help:      "Columns dropped by the output variable policy.",
		}),
		ColumnsUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_unresolved_total",
			Help:      "Admitted columns with no variable definition.",
		}),
		StationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "station_duration_seconds",
			Help:      "Duration of one station's extract-transform-load cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.StationsConverted,
		m.StationsFailed,
		m.ColumnsRetained,
		m.ColumnsExcluded,
		m.ColumnsUnresolved,
		m.StationDuration,
	}
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	m.gatherer = prometheus.DefaultGatherer
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	m.gatherer = reg
	return m
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text format, for pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
