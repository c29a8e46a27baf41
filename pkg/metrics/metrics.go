package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsCreated prometheus.Counter
	BookingsUpdated prometheus.Counter
	BookingsDeleted prometheus.Counter
	SaveFailures    prometheus.Counter
	StoreSize       prometheus.Gauge
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of appointments created",
		}),
		BookingsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_updated_total",
			Help:      "Total number of appointments updated",
		}),
		BookingsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_deleted_total",
			Help:      "Total number of appointments deleted",
		}),
		SaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_save_failures_total",
			Help:      "Total number of failed appointment file writes",
		}),
		StoreSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_appointments",
			Help:      "Current number of appointments in the store",
		}),
	}
}
