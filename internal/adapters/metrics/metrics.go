package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bot's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	EventsTotal           *prometheus.CounterVec
	HandledTotal          *prometheus.CounterVec
	LookupsTotal          *prometheus.CounterVec
	LookupDurationSeconds prometheus.Histogram
}

func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		EventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foremanbot_events_total",
				Help: "Inbound chat events by platform, event type and routing decision",
			},
			[]string{"platform", "event", "action"},
		),

		HandledTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foremanbot_handled_events_total",
				Help: "Handled events by platform and outcome",
			},
			[]string{"platform", "status"}, // status: ok, error
		),

		LookupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "foremanbot_lookups_total",
				Help: "Foreman host lookups by outcome",
			},
			[]string{"outcome"}, // outcome: found, not_found, skipped, error
		),

		LookupDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "foremanbot_lookup_duration_seconds",
				Help:    "Foreman host lookup duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
	}
}

func (m *Metrics) RecordEvent(platform, event, action string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(platform, event, action).Inc()
}

func (m *Metrics) RecordHandled(platform, status string) {
	if m == nil {
		return
	}
	m.HandledTotal.WithLabelValues(platform, status).Inc()
}

func (m *Metrics) RecordLookup(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
	if outcome != "skipped" {
		m.LookupDurationSeconds.Observe(seconds)
	}
}
