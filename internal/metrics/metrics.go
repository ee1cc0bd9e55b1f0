package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ListingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
		[]string{LabelItem},
	)

	ListingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCancelled,
			Help: HelpTextListingsCancelled,
		},
	)

	ListingsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
		[]string{LabelItem},
	)

	OffersMade = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOffersMade,
			Help: HelpTextOffersMade,
		},
	)

	OffersAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOffersAccepted,
			Help: HelpTextOffersAccepted,
		},
	)

	OffersRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOffersRejected,
			Help: HelpTextOffersRejected,
		},
	)

	OffersWithdrawn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOffersWithdrawn,
			Help: HelpTextOffersWithdrawn,
		},
	)

	TradeVolume = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTradeVolume,
			Help: HelpTextTradeVolume,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)
)
