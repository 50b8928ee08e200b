package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	RecordsTotal     prometheus.Gauge
	RecordsAdded     prometheus.Counter
	RecordsDeleted   prometheus.Counter
	Imports          *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	Notifications    *prometheus.GaugeVec
}

// NewMetrics creates the metrics on a fresh registry, so several instances
// (one per test) never collide.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RecordsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "The number of records in the set",
		}),
		RecordsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_added_total",
			Help:      "The total number of records added",
		}),
		RecordsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_deleted_total",
			Help:      "The total number of records deleted",
		}),
		Imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "The total number of import attempts",
		}, []string{"outcome"}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "The total number of rejected record entries",
		}, []string{"field"}),
		Notifications: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications",
			Help:      "Notifications in the last classification, by status",
		}, []string{"status"}),
	}
}
