package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bytehackage_events_dispatched_total",
		Help: "Realtime events dispatched, by event name and audience.",
	}, []string{"event", "audience"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bytehackage_emergency_emails_total",
		Help: "Emergency notification emails attempted, by outcome.",
	}, []string{"outcome"})
)
