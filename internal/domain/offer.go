package domain

import "time"

// OfferStatus is the lifecycle state of an offer
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// Terminal reports whether no further transition is permitted from s
func (s OfferStatus) Terminal() bool {
	return s == OfferStatusAccepted || s == OfferStatusRejected
}

// Offer is a buyer's counter-proposal of a different price against an
// existing listing. No funds are reserved at creation time; the buyer's
// balance is checked inside the AcceptOffer transaction.
type Offer struct {
	ID        string      `json:"offer_id"`
	ListingID string      `json:"listing_id"`
	BuyerID   string      `json:"buyer_id"`
	BuyerName string      `json:"buyer_name"` // denormalized snapshot of the buyer's display name
	Amount    int64       `json:"amount"`
	Status    OfferStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
