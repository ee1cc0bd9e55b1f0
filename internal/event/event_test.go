package event

import (
	"context"
	"errors"
	"testing"

	"github.com/softpaws/bazaar/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: "unheard"})
	if err != nil {
		t.Errorf("Publish to no subscribers should not error, got: %v", err)
	}
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Fatal("Expected aggregated handler error")
	}
}

func TestNewListingEvent(t *testing.T) {
	listing := domain.Listing{
		ID:          "listing-1",
		SellerID:    "seller-1",
		Item:        domain.ItemSnapshot{ItemID: 7, Name: "Moon Blade"},
		AskingPrice: 100,
	}

	evt := NewListingEvent(ListingSold, listing, "buyer-1", 100)

	if evt.Type != ListingSold {
		t.Errorf("Expected type %s, got %s", ListingSold, evt.Type)
	}
	payload, ok := evt.Payload.(domain.ListingEventPayload)
	if !ok {
		t.Fatalf("Expected ListingEventPayload, got %T", evt.Payload)
	}
	if payload.ListingID != "listing-1" || payload.BuyerID != "buyer-1" || payload.Price != 100 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestNewOfferEvent(t *testing.T) {
	offer := domain.Offer{
		ID:        "offer-1",
		ListingID: "listing-1",
		BuyerID:   "buyer-1",
		Amount:    80,
	}

	evt := NewOfferEvent(OfferMade, offer)

	payload, ok := evt.Payload.(domain.OfferEventPayload)
	if !ok {
		t.Fatalf("Expected OfferEventPayload, got %T", evt.Payload)
	}
	if payload.OfferID != "offer-1" || payload.Amount != 80 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
