package repository

import (
	"context"

	"github.com/softpaws/bazaar/internal/domain"
)

// Exchange defines the interface for exchange persistence.
// Balance and inventory mutations are deliberately absent from the
// non-transactional surface: only the exchange engine mutates them, and only
// inside an ExchangeTx.
type Exchange interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	UpsertAccount(ctx context.Context, accountID, displayName string) (*domain.Account, error)
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	GetOffer(ctx context.Context, offerID string) (*domain.Offer, error)
	BeginTx(ctx context.Context) (ExchangeTx, error)
}

// ExchangeTx defines the operations available inside a single exchange
// transaction. Precondition checks and side effects both happen through this
// interface so they share one transaction boundary; the conditional
// transitions re-check state at write time.
type ExchangeTx interface {
	Tx

	// Account operations
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	// Debit fails with domain.ErrInsufficientFunds when balance < amount;
	// it never applies a partial debit.
	Debit(ctx context.Context, accountID string, amount int64) error
	Credit(ctx context.Context, accountID string, amount int64) error
	// RemoveInventoryAt fails with domain.ErrIndexOutOfRange when the index
	// no longer refers to a present item.
	RemoveInventoryAt(ctx context.Context, accountID string, index int) (*domain.ItemSnapshot, error)
	AppendInventory(ctx context.Context, accountID string, item domain.ItemSnapshot) error

	// Listing operations
	InsertListing(ctx context.Context, listing domain.Listing) error
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)
	// TransitionListingStatus applies newStatus iff the row's status still
	// equals expected at write time. Returns false without modification when
	// the compare fails. This is the concurrency primitive of the whole design.
	TransitionListingStatus(ctx context.Context, listingID string, expected, newStatus domain.ListingStatus) (bool, error)

	// Offer operations
	InsertOffer(ctx context.Context, offer domain.Offer) error
	GetOffer(ctx context.Context, offerID string) (*domain.Offer, error)
	TransitionOfferStatus(ctx context.Context, offerID string, expected, newStatus domain.OfferStatus) (bool, error)
	// DeleteOffer removes the row iff it is still pending.
	DeleteOffer(ctx context.Context, offerID string) (bool, error)
	// RejectPendingOffersByListing flips every remaining pending offer on a
	// finalized listing to rejected. Returns the number of offers affected.
	RejectPendingOffersByListing(ctx context.Context, listingID string) (int64, error)
}

// Market defines the read-only view the market query service consumes
type Market interface {
	ListActiveListings(ctx context.Context) ([]domain.Listing, error)
	ListPendingOffers(ctx context.Context) ([]domain.Offer, error)
}
