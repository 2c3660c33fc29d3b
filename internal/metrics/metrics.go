package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request Metrics
var (
	// RequestsTotal counts handled requests by mode (direct/document) and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_requests_total",
			Help: "Total sentiment requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// RequestDuration tracks request handling latency in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_request_duration_seconds",
			Help:    "Sentiment request handling duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)

	// RequestsInFlight tracks requests currently being handled
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_requests_in_flight",
			Help: "Sentiment requests currently being handled",
		},
	)

	// RepliesTotal counts replies by status and whether producing them succeeded
	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_replies_total",
			Help: "Total replies sent by status and result",
		},
		[]string{"status", "result"},
	)
)

// Lexicon and Store Metrics
var (
	LexiconEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_lexicon_entries",
			Help: "Number of entries in the loaded lexicon",
		},
	)

	// StoreHealthy is 1 when the last shared-state ping succeeded, 0 otherwise
	StoreHealthy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_store_healthy",
			Help: "Shared-state store health (1=healthy, 0=unhealthy)",
		},
	)
)
