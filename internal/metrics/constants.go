package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameListingsCreated   = "listings_created_total"
	MetricNameListingsCancelled = "listings_cancelled_total"
	MetricNameListingsSold      = "listings_sold_total"
	MetricNameOffersMade        = "offers_made_total"
	MetricNameOffersAccepted    = "offers_accepted_total"
	MetricNameOffersRejected    = "offers_rejected_total"
	MetricNameOffersWithdrawn   = "offers_withdrawn_total"
	MetricNameTradeVolume       = "trade_volume_total"
	MetricNameSSEClients        = "sse_clients_connected"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event publish and handler errors"
)

// Business metric help text
const (
	HelpTextListingsCreated   = "Total number of listings created"
	HelpTextListingsCancelled = "Total number of listings cancelled"
	HelpTextListingsSold      = "Total number of listings sold"
	HelpTextOffersMade        = "Total number of offers made"
	HelpTextOffersAccepted    = "Total number of offers accepted"
	HelpTextOffersRejected    = "Total number of offers rejected"
	HelpTextOffersWithdrawn   = "Total number of offers withdrawn"
	HelpTextTradeVolume       = "Total currency moved by settled trades"
	HelpTextSSEClients        = "Current number of connected SSE clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelItem   = "item"
)

// ============================================================================
// Event Payload Field Names
// ============================================================================

// Field names used when extracting values from event payloads
const (
	PayloadFieldItemName = "item_name"
	PayloadFieldPrice    = "price"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
