package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the likes module.
type Metrics struct {
	Toggles       *prometheus.CounterVec
	RacesResolved prometheus.Counter
}

// New creates a Metrics instance with all likes module metrics registered.
func New() *Metrics {
	return &Metrics{
		Toggles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_like_toggles_total",
			Help: "Total like toggles, by resulting state",
		}, []string{"state"}),
		RacesResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_like_toggle_races_resolved_total",
			Help: "Toggle inserts that lost a race and were reconciled to the on state",
		}),
	}
}

// IncrementToggle records one completed toggle.
func (m *Metrics) IncrementToggle(state string) {
	if m == nil {
		return
	}
	m.Toggles.WithLabelValues(state).Inc()
}

// IncrementRaceResolved records one insert conflict reconciled as "on".
func (m *Metrics) IncrementRaceResolved() {
	if m == nil {
		return
	}
	m.RacesResolved.Inc()
}
