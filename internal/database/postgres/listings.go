package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/softpaws/bazaar/internal/domain"
)

const listingColumns = `listing_id, seller_id, seller_name, item, asking_price, status, created_at`

// GetListing retrieves a listing by ID
func (r *ExchangeRepository) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return getListing(ctx, r.db, listingID)
}

// GetListing for Tx
func (t *ExchangeTx) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return getListing(ctx, t.tx, listingID)
}

// InsertListing inserts a new listing row
func (t *ExchangeTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	item, err := marshalItem(listing.Item)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO listings (listing_id, seller_id, seller_name, item, asking_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		listing.ID, listing.SellerID, listing.SellerName, item,
		listing.AskingPrice, listing.Status, listing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// TransitionListingStatus is the conditional write at the heart of the
// exchange: the new status is applied iff the row's status still equals
// expected at write time. RowsAffected == 0 means the caller lost the race.
func (t *ExchangeTx) TransitionListingStatus(ctx context.Context, listingID string, expected, newStatus domain.ListingStatus) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE listings SET status = $3
		WHERE listing_id = $1 AND status = $2`,
		listingID, expected, newStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition listing status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListActiveListings returns every active listing, newest first
func (r *ExchangeRepository) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM listings
		WHERE status = 'active'
		ORDER BY created_at DESC`, listingColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

// ---- Shared listing helpers ----

func getListing(ctx context.Context, q querier, listingID string) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE listing_id = $1`, listingColumns)

	listing, err := scanListing(q.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, listingID)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		listing domain.Listing
		raw     []byte
	)
	if err := row.Scan(&listing.ID, &listing.SellerID, &listing.SellerName, &raw,
		&listing.AskingPrice, &listing.Status, &listing.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &listing.Item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing item: %w", err)
	}
	return &listing, nil
}
