package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/logger"
	"github.com/softpaws/bazaar/internal/repository"
)

// CreateListing moves the item at inventoryIndex out of the seller's
// inventory and into the custody of a new active listing. The removal and
// the insert commit together, so the item is never in both places and never
// in neither.
func (s *service) CreateListing(ctx context.Context, caller domain.Identity, inventoryIndex int, askingPrice int64) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateListingCalled, "account_id", caller.AccountID, "inventory_index", inventoryIndex, "asking_price", askingPrice)

	// 1. Validate request
	if err := validatePrice(askingPrice); err != nil {
		return nil, err
	}

	// 2. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 3. Take the item out of the seller's inventory. The row lock taken
	// here serializes concurrent listings from the same account, so two
	// requests naming the same index cannot both succeed.
	item, err := tx.RemoveInventoryAt(ctx, caller.AccountID, inventoryIndex)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return nil, fmt.Errorf("%w: index %d", domain.ErrItemNotFound, inventoryIndex)
		}
		return nil, err
	}

	// 4. Insert the listing holding the snapshot
	listing := domain.Listing{
		ID:          s.newID(),
		SellerID:    caller.AccountID,
		SellerName:  caller.DisplayName,
		Item:        *item,
		AskingPrice: askingPrice,
		Status:      domain.ListingStatusActive,
		CreatedAt:   s.now(),
	}
	if err := tx.InsertListing(ctx, listing); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publish(ctx, event.NewListingEvent(event.ListingCreated, listing, "", 0))

	log.Info(LogMsgListingCreated, "listing_id", listing.ID, "item", listing.Item.Name, "asking_price", askingPrice)
	return &listing, nil
}

// CancelListing finalizes an active listing as cancelled and returns the
// item snapshot to the seller's inventory. Only the seller may cancel.
func (s *service) CancelListing(ctx context.Context, caller domain.Identity, listingID string) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCancelListingCalled, "account_id", caller.AccountID, "listing_id", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 1. Load the listing and check ownership
	listing, err := tx.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != caller.AccountID {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrNotOwner, listingID)
	}

	// 2. Conditional transition active -> cancelled. A false return means a
	// buyer or concurrent cancel finalized the listing first; nothing has
	// been modified.
	ok, err := tx.TransitionListingStatus(ctx, listingID, domain.ListingStatusActive, domain.ListingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrAlreadyFinalized, listingID)
	}

	// 3. Return the item to the seller
	if err := tx.AppendInventory(ctx, caller.AccountID, listing.Item); err != nil {
		return nil, err
	}

	// 4. Sweep remaining pending offers
	rejected, err := tx.RejectPendingOffersByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	listing.Status = domain.ListingStatusCancelled
	s.publish(ctx, event.NewListingEvent(event.ListingCancelled, *listing, "", 0))

	log.Info(LogMsgListingCancelled, "listing_id", listingID, "offers_rejected", rejected)
	return listing, nil
}
