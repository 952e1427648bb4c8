package companion

import (
	"github.com/prometheus/client_golang/prometheus"

	"sensorwatch/internal/feed"
)

// Metrics counts feed fetches and watch pushes and exports the last value
// seen per sensor. A nil *Metrics records nothing.
type Metrics struct {
	Fetches *prometheus.CounterVec
	Pushes  *prometheus.CounterVec
	Values  *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorwatch_companion_fetches_total",
			Help: "Sensor feed fetches by result",
		}, []string{"result"}),
		Pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sensorwatch_companion_pushes_total",
			Help: "Sensor batches pushed to the watch by result",
		}, []string{"result"}),
		Values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sensorwatch_sensor_value",
			Help: "Last value received from the sensor feed",
		}, []string{"location", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Fetches, m.Pushes, m.Values)
	}
	return m
}

func (m *Metrics) fetch(result string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(result).Inc()
}

func (m *Metrics) push(result string) {
	if m == nil {
		return
	}
	m.Pushes.WithLabelValues(result).Inc()
}

func (m *Metrics) observe(readings []feed.Reading) {
	if m == nil {
		return
	}
	for _, r := range readings {
		m.Values.With(prometheus.Labels{"location": r.LocationLabel, "kind": r.Type}).Set(r.Value)
	}
}
