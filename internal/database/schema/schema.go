package schema

// SchemaSQL contains the full database schema initialization script.
// Kept in sync with the goose migrations under migrations/; used by the
// devtool init-db command to bootstrap a blank database.
const SchemaSQL = `
-- Accounts: balance plus an ordered, index-addressed inventory of item
-- snapshots. Duplicate items are legal; position is the only distinguisher.
CREATE TABLE IF NOT EXISTS accounts (
    account_id UUID PRIMARY KEY,
    display_name VARCHAR(100) NOT NULL,
    balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
    inventory JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Listings: while status = 'active' the item snapshot is in the listing's
-- custody and in no account's inventory.
CREATE TABLE IF NOT EXISTS listings (
    listing_id UUID PRIMARY KEY,
    seller_id UUID NOT NULL REFERENCES accounts(account_id),
    seller_name VARCHAR(100) NOT NULL,
    item JSONB NOT NULL,
    asking_price BIGINT NOT NULL CHECK (asking_price > 0),
    status VARCHAR(20) NOT NULL DEFAULT 'active'
        CHECK (status IN ('active', 'completed', 'cancelled')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_listings_active
    ON listings (created_at DESC) WHERE status = 'active';

-- Offers: price negotiation against a listing. No funds are reserved at
-- creation; sufficiency is checked when the seller accepts.
CREATE TABLE IF NOT EXISTS offers (
    offer_id UUID PRIMARY KEY,
    listing_id UUID NOT NULL REFERENCES listings(listing_id) ON DELETE CASCADE,
    buyer_id UUID NOT NULL REFERENCES accounts(account_id),
    buyer_name VARCHAR(100) NOT NULL,
    amount BIGINT NOT NULL CHECK (amount > 0),
    status VARCHAR(20) NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'accepted', 'rejected')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_offers_listing_pending
    ON offers (listing_id) WHERE status = 'pending';
`
