// Package metrics exposes prometheus counters for the employee subsystem.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements cache.Recorder, history append accounting and the
// outbox relay counters.
type Collector struct {
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheErrors    *prometheus.CounterVec
	historyAppends *prometheus.CounterVec
	eventsRelayed  *prometheus.CounterVec
	relayFailures  *prometheus.CounterVec
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_cache_hits_total",
			Help: "Cache lookups answered from the cache, by keyspace.",
		}, []string{"keyspace"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_cache_misses_total",
			Help: "Cache lookups that fell through to the database, by keyspace.",
		}, []string{"keyspace"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_cache_errors_total",
			Help: "Cache operations that failed, by keyspace.",
		}, []string{"keyspace"}),
		historyAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_history_appends_total",
			Help: "Employee history entries written, by module.",
		}, []string{"module"}),
		eventsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_outbox_events_relayed_total",
			Help: "Outbox events published to kafka, by event type.",
		}, []string{"event_type"}),
		relayFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hrm_outbox_relay_failures_total",
			Help: "Outbox events that failed to publish, by event type.",
		}, []string{"event_type"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheErrors,
		c.historyAppends,
		c.eventsRelayed,
		c.relayFailures,
	)

	return c
}

func (c *Collector) RecordCacheHit(keyspace string) {
	c.cacheHits.WithLabelValues(keyspace).Inc()
}

func (c *Collector) RecordCacheMiss(keyspace string) {
	c.cacheMisses.WithLabelValues(keyspace).Inc()
}

func (c *Collector) RecordCacheError(keyspace string) {
	c.cacheErrors.WithLabelValues(keyspace).Inc()
}

func (c *Collector) RecordHistoryAppend(module string) {
	c.historyAppends.WithLabelValues(module).Inc()
}

func (c *Collector) RecordEventRelayed(eventType string) {
	c.eventsRelayed.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordRelayFailure(eventType string) {
	c.relayFailures.WithLabelValues(eventType).Inc()
}

// Handler serves the prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
