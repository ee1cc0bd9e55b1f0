package domain

import "time"

// ListingStatus is the lifecycle state of a listing
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusCompleted ListingStatus = "completed"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s
func (s ListingStatus) Terminal() bool {
	return s == ListingStatusCompleted || s == ListingStatusCancelled
}

// Listing is a seller's standing offer to sell one specific item snapshot
// for a fixed price. While status is active the item snapshot is in the
// listing's custody and in no account's inventory.
type Listing struct {
	ID          string        `json:"listing_id"`
	SellerID    string        `json:"seller_id"`
	SellerName  string        `json:"seller_name"` // denormalized snapshot of the seller's display name
	Item        ItemSnapshot  `json:"item"`
	AskingPrice int64         `json:"asking_price"`
	Status      ListingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
