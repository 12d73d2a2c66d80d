package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the activity module: write volume, the
// failure channel, and read-path latency.
type Metrics struct {
	EntriesRecorded *prometheus.CounterVec
	WriteFailures   prometheus.Counter
	ListDuration    prometheus.Histogram
	StatsCacheHits  prometheus.Counter
	StatsCacheMiss  prometheus.Counter
}

// New creates a Metrics instance with all activity module metrics registered.
func New() *Metrics {
	return &Metrics{
		EntriesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lumina_activity_entries_recorded_total",
			Help: "Total activity entries written, by action and status",
		}, []string{"action", "status"}),
		WriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_activity_write_failures_total",
			Help: "Total activity entries dropped because the store rejected the write",
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lumina_activity_list_duration_seconds",
			Help:    "Duration of activity list queries (admin listing path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_activity_stats_cache_hits_total",
			Help: "Dashboard stats served from the Redis cache",
		}),
		StatsCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lumina_activity_stats_cache_misses_total",
			Help: "Dashboard stats recomputed from the store",
		}),
	}
}

// IncrementRecorded records one successful entry write.
func (m *Metrics) IncrementRecorded(action, status string) {
	if m == nil {
		return
	}
	m.EntriesRecorded.WithLabelValues(action, status).Inc()
}

// IncrementWriteFailure records one dropped entry.
func (m *Metrics) IncrementWriteFailure() {
	if m == nil {
		return
	}
	m.WriteFailures.Inc()
}

// ObserveList records the duration of a list query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveList(start time.Time) {
	if m == nil {
		return
	}
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// IncrementCacheHit records a stats dashboard cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.StatsCacheHits.Inc()
}

// IncrementCacheMiss records a stats dashboard cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.StatsCacheMiss.Inc()
}
