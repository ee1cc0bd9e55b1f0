package metrics

import (
	"context"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/logger"
)

// EventMetricsCollector subscribes to exchange events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every exchange event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.ExchangeTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ListingCreated:
		if payload, ok := evt.Payload.(domain.ListingEventPayload); ok {
			ListingsCreated.WithLabelValues(payload.ItemName).Inc()
		}

	case event.ListingCancelled:
		ListingsCancelled.Inc()

	case event.ListingSold:
		if payload, ok := evt.Payload.(domain.ListingEventPayload); ok {
			ListingsSold.WithLabelValues(payload.ItemName).Inc()
			TradeVolume.Add(float64(payload.Price))
		}

	case event.OfferMade:
		OffersMade.Inc()

	case event.OfferAccepted:
		OffersAccepted.Inc()

	case event.OfferRejected:
		OffersRejected.Inc()

	case event.OfferWithdrawn:
		OffersWithdrawn.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
