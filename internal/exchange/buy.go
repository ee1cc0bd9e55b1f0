package exchange

import (
	"context"
	"fmt"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/logger"
	"github.com/softpaws/bazaar/internal/repository"
)

// Buy purchases an active listing at its asking price. The status transition
// is the decision point: it happens before any balance or inventory
// mutation, so of N concurrent buyers exactly one wins and the rest fail
// with ErrAlreadySold and zero side effects.
func (s *service) Buy(ctx context.Context, caller domain.Identity, listingID string) (*domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "account_id", caller.AccountID, "listing_id", listingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 1. Load the listing
	listing, err := tx.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.ListingStatusActive {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrAlreadySold, listingID)
	}

	// 2. Claim the listing first. Losing this compare means another buyer
	// or the seller's cancel got there between the read and the write.
	ok, err := tx.TransitionListingStatus(ctx, listingID, domain.ListingStatusActive, domain.ListingStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrAlreadySold, listingID)
	}

	// 3. Move the money. A failed debit rolls back the claim above.
	if err := tx.Debit(ctx, caller.AccountID, listing.AskingPrice); err != nil {
		return nil, err
	}
	if err := tx.Credit(ctx, listing.SellerID, listing.AskingPrice); err != nil {
		return nil, err
	}

	// 4. Deliver the item
	if err := tx.AppendInventory(ctx, caller.AccountID, listing.Item); err != nil {
		return nil, err
	}

	// 5. Sweep remaining pending offers on the now-sold listing
	rejected, err := tx.RejectPendingOffersByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	listing.Status = domain.ListingStatusCompleted
	s.publish(ctx, event.NewListingEvent(event.ListingSold, *listing, caller.AccountID, listing.AskingPrice))

	log.Info(LogMsgListingSold, "listing_id", listingID, "buyer_id", caller.AccountID, "price", listing.AskingPrice, "offers_rejected", rejected)
	return listing, nil
}
