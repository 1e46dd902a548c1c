// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the reply endpoints.
type Metrics struct {
	// Replies by route and HTTP status
	Replies *prometheus.CounterVec

	// Provider fetch latency by route
	FetchLatency *prometheus.HistogramVec

	// Number of entries a reply was built from
	EntriesFound prometheus.Histogram
}

// NewMetrics creates the reply metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Replies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chronologist_replies_total",
			Help: "Total replies by route and HTTP status",
		}, []string{"route", "status"}),

		FetchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chronologist_fetch_duration_seconds",
			Help:    "Duration of history provider fetches by route",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),

		EntriesFound: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "chronologist_entries_found",
			Help:    "Entries available to a reply before the summary limit",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementReply records a reply.
func (m *Metrics) IncrementReply(route, status string) {
	if m != nil {
		m.Replies.WithLabelValues(route, status).Inc()
	}
}

// ObserveFetchLatency records the duration of a provider fetch.
func (m *Metrics) ObserveFetchLatency(route string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// ObserveEntriesFound records how many entries a reply had to choose from.
func (m *Metrics) ObserveEntriesFound(n int) {
	if m != nil {
		m.EntriesFound.Observe(float64(n))
	}
}
