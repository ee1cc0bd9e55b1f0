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

// MakeOffer records a pending counter-price against an active listing. No
// funds are reserved; the buyer's balance is checked when the seller
// accepts.
func (s *service) MakeOffer(ctx context.Context, caller domain.Identity, listingID string, amount int64) (*domain.Offer, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMakeOfferCalled, "account_id", caller.AccountID, "listing_id", listingID, "amount", amount)

	// 1. Validate request
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	// 2. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 3. The listing must still be active. A finalized listing is treated
	// the same as a missing one: no further offers.
	listing, err := tx.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.ListingStatusActive {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrListingNotFound, listingID)
	}

	// 4. Insert the pending offer
	offer := domain.Offer{
		ID:        s.newID(),
		ListingID: listingID,
		BuyerID:   caller.AccountID,
		BuyerName: caller.DisplayName,
		Amount:    amount,
		Status:    domain.OfferStatusPending,
		CreatedAt: s.now(),
	}
	if err := tx.InsertOffer(ctx, offer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publish(ctx, event.NewOfferEvent(event.OfferMade, offer))

	log.Info(LogMsgOfferMade, "offer_id", offer.ID, "listing_id", listingID, "amount", amount)
	return &offer, nil
}

// AcceptOffer completes a trade at the offered amount instead of the asking
// price. The listing is claimed first, then the offer, then the funds and
// item move. Only the listing's seller may accept.
func (s *service) AcceptOffer(ctx context.Context, caller domain.Identity, offerID string) (*domain.Offer, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAcceptOfferCalled, "account_id", caller.AccountID, "offer_id", offerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 1. Load the offer and its listing, check authorization
	offer, listing, err := s.getOfferEntities(ctx, tx, offerID, caller.AccountID)
	if err != nil {
		return nil, err
	}
	if offer.Status != domain.OfferStatusPending {
		return nil, fmt.Errorf("%w: offer %s", domain.ErrAlreadyFinalized, offerID)
	}

	// 2. Claim the listing. A false compare means the listing was sold or
	// cancelled since the offer was made.
	ok, err := tx.TransitionListingStatus(ctx, listing.ID, domain.ListingStatusActive, domain.ListingStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: listing %s", domain.ErrAlreadyFinalized, listing.ID)
	}

	// 3. Claim the offer
	ok, err = tx.TransitionOfferStatus(ctx, offerID, domain.OfferStatusPending, domain.OfferStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: offer %s", domain.ErrAlreadyFinalized, offerID)
	}

	// 4. Move the money at the offered amount. The buyer may have spent
	// their balance since offering; an insufficient debit rolls everything
	// back and the listing stays active.
	if err := tx.Debit(ctx, offer.BuyerID, offer.Amount); err != nil {
		return nil, err
	}
	if err := tx.Credit(ctx, listing.SellerID, offer.Amount); err != nil {
		return nil, err
	}

	// 5. Deliver the item to the offer's buyer
	if err := tx.AppendInventory(ctx, offer.BuyerID, listing.Item); err != nil {
		return nil, err
	}

	// 6. Sweep the listing's other pending offers
	rejected, err := tx.RejectPendingOffersByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	offer.Status = domain.OfferStatusAccepted
	s.publish(ctx, event.NewOfferEvent(event.OfferAccepted, *offer))
	s.publish(ctx, event.NewListingEvent(event.ListingSold, *listing, offer.BuyerID, offer.Amount))

	log.Info(LogMsgOfferAccepted, "offer_id", offerID, "listing_id", listing.ID, "amount", offer.Amount, "offers_rejected", rejected)
	return offer, nil
}

// RejectOffer finalizes a pending offer as rejected. Only the seller of the
// offer's listing may reject. The listing itself is untouched.
func (s *service) RejectOffer(ctx context.Context, caller domain.Identity, offerID string) (*domain.Offer, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRejectOfferCalled, "account_id", caller.AccountID, "offer_id", offerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	offer, _, err := s.getOfferEntities(ctx, tx, offerID, caller.AccountID)
	if err != nil {
		return nil, err
	}

	ok, err := tx.TransitionOfferStatus(ctx, offerID, domain.OfferStatusPending, domain.OfferStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: offer %s", domain.ErrAlreadyFinalized, offerID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	offer.Status = domain.OfferStatusRejected
	s.publish(ctx, event.NewOfferEvent(event.OfferRejected, *offer))

	log.Info(LogMsgOfferRejected, "offer_id", offerID)
	return offer, nil
}

// WithdrawOffer removes the caller's own pending offer. A finalized offer
// cannot be withdrawn.
func (s *service) WithdrawOffer(ctx context.Context, caller domain.Identity, offerID string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWithdrawOfferCalled, "account_id", caller.AccountID, "offer_id", offerID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	offer, err := tx.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.BuyerID != caller.AccountID {
		return fmt.Errorf("%w: offer %s", domain.ErrNotOwner, offerID)
	}

	// DeleteOffer only removes pending rows, so a race with AcceptOffer or
	// RejectOffer shows up here as a false return.
	ok, err := tx.DeleteOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: offer %s", domain.ErrAlreadyFinalized, offerID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publish(ctx, event.NewOfferEvent(event.OfferWithdrawn, *offer))

	log.Info(LogMsgOfferWithdrawn, "offer_id", offerID)
	return nil
}

// getOfferEntities loads an offer and its parent listing inside tx and
// verifies callerID is the listing's seller. A dangling listing reference is
// reported as a database error rather than not-found.
func (s *service) getOfferEntities(ctx context.Context, tx repository.ExchangeTx, offerID, callerID string) (*domain.Offer, *domain.Listing, error) {
	offer, err := tx.GetOffer(ctx, offerID)
	if err != nil {
		return nil, nil, err
	}

	listing, err := tx.GetListing(ctx, offer.ListingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, nil, fmt.Errorf("%w: offer %s references missing listing %s", domain.ErrDatabaseError, offerID, offer.ListingID)
		}
		return nil, nil, err
	}

	if listing.SellerID != callerID {
		return nil, nil, fmt.Errorf("%w: offer %s", domain.ErrNotOwner, offerID)
	}

	return offer, listing, nil
}
