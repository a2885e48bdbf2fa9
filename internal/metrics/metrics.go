package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingAttempts counts seat reservations by outcome (ok, validation_failed, not_found, conflict, error)
	BookingAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "booking_attempts_total",
			Help:      "The total number of seat reservation attempts",
		},
		[]string{"outcome"},
	)

	// ShowtimeWrites counts showtime creates, updates and deletes by outcome
	ShowtimeWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "showtime_writes_total",
			Help:      "The total number of showtime write operations",
		},
		[]string{"operation", "outcome"},
	)

	// TicketsVoided counts tickets removed together with their showtime
	TicketsVoided = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "tickets_voided_total",
			Help:      "The total number of tickets deleted by showtime removal",
		},
	)

	// EventPublishFailures counts domain events that could not be handed to the broker
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "popcorn",
			Name:      "event_publish_failures_total",
			Help:      "The total number of domain events that failed to publish",
		},
		[]string{"topic"},
	)

	// HTTPRequestDuration observes handler latency (summary with quantiles 0.5, 0.9, and 0.99)
	HTTPRequestDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "popcorn",
			Name:       "http_request_duration_seconds",
			Help:       "The time spent serving HTTP requests",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "route", "status"},
	)
)
