package domain

// Event type identifiers published by the exchange engine.
// Every successful mutation publishes exactly one of these after commit.
const (
	EventTypeListingCreated   = "listing.created"
	EventTypeListingCancelled = "listing.cancelled"
	EventTypeListingSold      = "listing.sold"
	EventTypeOfferMade        = "offer.made"
	EventTypeOfferAccepted    = "offer.accepted"
	EventTypeOfferRejected    = "offer.rejected"
	EventTypeOfferWithdrawn   = "offer.withdrawn"

	// EventTypeListingsChanged is the coarse-grained invalidation signal the
	// change feed emits to clients. It carries no payload describing what
	// changed; subscribers refetch and re-run the market query.
	EventTypeListingsChanged = "listings.changed"
)

// ListingEventPayload is the payload for listing.* events
type ListingEventPayload struct {
	ListingID   string `json:"listing_id"`
	SellerID    string `json:"seller_id"`
	BuyerID     string `json:"buyer_id,omitempty"` // set on listing.sold
	ItemName    string `json:"item_name"`
	AskingPrice int64  `json:"asking_price"`
	Price       int64  `json:"price,omitempty"` // settled price, set on listing.sold
	Timestamp   int64  `json:"timestamp"`
}

// OfferEventPayload is the payload for offer.* events
type OfferEventPayload struct {
	OfferID   string `json:"offer_id"`
	ListingID string `json:"listing_id"`
	BuyerID   string `json:"buyer_id"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}
