package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/softpaws/bazaar/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Exchange event types
const (
	ListingCreated   = Type(domain.EventTypeListingCreated)
	ListingCancelled = Type(domain.EventTypeListingCancelled)
	ListingSold      = Type(domain.EventTypeListingSold)
	OfferMade        = Type(domain.EventTypeOfferMade)
	OfferAccepted    = Type(domain.EventTypeOfferAccepted)
	OfferRejected    = Type(domain.EventTypeOfferRejected)
	OfferWithdrawn   = Type(domain.EventTypeOfferWithdrawn)
)

// ExchangeTypes lists every event type the exchange engine publishes.
// The change feed subscribes to all of them.
var ExchangeTypes = []Type{
	ListingCreated, ListingCancelled, ListingSold,
	OfferMade, OfferAccepted, OfferRejected, OfferWithdrawn,
}

// Type-safe event constructors

// NewListingEvent creates a listing lifecycle event
func NewListingEvent(t Type, listing domain.Listing, buyerID string, price int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.ListingEventPayload{
			ListingID:   listing.ID,
			SellerID:    listing.SellerID,
			BuyerID:     buyerID,
			ItemName:    listing.Item.Name,
			AskingPrice: listing.AskingPrice,
			Price:       price,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewOfferEvent creates an offer lifecycle event
func NewOfferEvent(t Type, offer domain.Offer) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.OfferEventPayload{
			OfferID:   offer.ID,
			ListingID: offer.ListingID,
			BuyerID:   offer.BuyerID,
			Amount:    offer.Amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; the exchange engine publishes after
	// commit, so a slow handler delays the response but never the trade.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
