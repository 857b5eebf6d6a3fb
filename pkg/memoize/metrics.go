package memoize

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics cache counters, a nil *Metrics records nothing
type Metrics struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	computes *prometheus.CounterVec
	failures *prometheus.CounterVec
	sets     *prometheus.CounterVec
}

// NewMetrics new metrics registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "llamalend",
			Subsystem: "memoize",
			Name:      name,
			Help:      help,
		}, []string{"cache"})
	}

	m := &Metrics{
		hits:     counter("hits_total", "Lookups served from the cache."),
		misses:   counter("misses_total", "Lookups that found no live entry."),
		computes: counter("computations_total", "Computations started."),
		failures: counter("failures_total", "Computations that returned an error."),
		sets:     counter("sets_total", "Values primed with Set."),
	}

	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.computes, m.failures, m.sets)
	}

	return m
}

func (m *Metrics) hit(name string) {
	if m != nil {
		m.hits.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) miss(name string) {
	if m != nil {
		m.misses.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) compute(name string) {
	if m != nil {
		m.computes.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) fail(name string) {
	if m != nil {
		m.failures.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) set(name string) {
	if m != nil {
		m.sets.WithLabelValues(name).Inc()
	}
}
