package persist

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Write results recorded on the writes counter.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the persistence counters.
type Metrics struct {
	Scheduled *prometheus.CounterVec
	Writes    *prometheus.CounterVec
	Loads     *prometheus.CounterVec
}

// NewMetrics creates unregistered persistence counters.
func NewMetrics() *Metrics {
	return &Metrics{
		Scheduled: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "simplepitch", Subsystem: "persist", Name: "scheduled_total", Help: "Number of debounced saves scheduled by collection."},
			[]string{"collection"},
		),
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "simplepitch", Subsystem: "persist", Name: "writes_total", Help: "Number of collection writes by result."},
			[]string{"collection", "result"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "simplepitch", Subsystem: "persist", Name: "loads_total", Help: "Number of collection reads at startup by backend and result."},
			[]string{"backend", "result"},
		),
	}
}

// RegisterCollectors registers every counter with reg.
func (m *Metrics) RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(m.Scheduled)
	reg.MustRegister(m.Writes)
	reg.MustRegister(m.Loads)
}
