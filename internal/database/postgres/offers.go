package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/softpaws/bazaar/internal/domain"
)

const offerColumns = `offer_id, listing_id, buyer_id, buyer_name, amount, status, created_at`

// GetOffer retrieves an offer by ID
func (r *ExchangeRepository) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	return getOffer(ctx, r.db, offerID)
}

// GetOffer for Tx
func (t *ExchangeTx) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	return getOffer(ctx, t.tx, offerID)
}

// InsertOffer inserts a new offer row
func (t *ExchangeTx) InsertOffer(ctx context.Context, offer domain.Offer) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO offers (offer_id, listing_id, buyer_id, buyer_name, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		offer.ID, offer.ListingID, offer.BuyerID, offer.BuyerName,
		offer.Amount, offer.Status, offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

// TransitionOfferStatus conditionally moves an offer to newStatus; same
// compare-and-swap semantics as TransitionListingStatus.
func (t *ExchangeTx) TransitionOfferStatus(ctx context.Context, offerID string, expected, newStatus domain.OfferStatus) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE offers SET status = $3
		WHERE offer_id = $1 AND status = $2`,
		offerID, expected, newStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition offer status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteOffer removes an offer iff it is still pending (buyer withdrawal)
func (t *ExchangeTx) DeleteOffer(ctx context.Context, offerID string) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM offers WHERE offer_id = $1 AND status = 'pending'`, offerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete offer: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RejectPendingOffersByListing flips every remaining pending offer on a
// finalized listing to rejected
func (t *ExchangeTx) RejectPendingOffersByListing(ctx context.Context, listingID string) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE offers SET status = 'rejected'
		WHERE listing_id = $1 AND status = 'pending'`,
		listingID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reject pending offers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListPendingOffers returns every pending offer, oldest first
func (r *ExchangeRepository) ListPendingOffers(ctx context.Context) ([]domain.Offer, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM offers
		WHERE status = 'pending'
		ORDER BY created_at ASC`, offerColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

// ---- Shared offer helpers ----

func getOffer(ctx context.Context, q querier, offerID string) (*domain.Offer, error) {
	query := fmt.Sprintf(`SELECT %s FROM offers WHERE offer_id = $1`, offerColumns)

	offer, err := scanOffer(q.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOfferNotFound, offerID)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var offer domain.Offer
	if err := row.Scan(&offer.ID, &offer.ListingID, &offer.BuyerID, &offer.BuyerName,
		&offer.Amount, &offer.Status, &offer.CreatedAt); err != nil {
		return nil, err
	}
	return &offer, nil
}
