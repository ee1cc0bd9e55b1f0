package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"

	// Listing errors
	ErrMsgListingNotFound  = "listing not found"
	ErrMsgAlreadySold      = "listing already sold"
	ErrMsgAlreadyFinalized = "already finalized"
	ErrMsgInvalidPrice     = "invalid price"

	// Offer errors
	ErrMsgOfferNotFound = "offer not found"
	ErrMsgInvalidAmount = "invalid amount"

	// Authorization errors
	ErrMsgNotOwner = "caller is not the owner"

	// Balance/inventory errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgIndexOutOfRange   = "inventory index out of range"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)

	// Listing errors
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	// ErrAlreadySold is returned when a Buy loses the race for a listing
	// (another buyer completed it, or the seller cancelled it first).
	ErrAlreadySold = errors.New(ErrMsgAlreadySold)
	// ErrAlreadyFinalized is returned when a conditional status transition
	// finds the target already in a terminal state.
	ErrAlreadyFinalized = errors.New(ErrMsgAlreadyFinalized)
	ErrInvalidPrice     = errors.New(ErrMsgInvalidPrice)

	// Offer errors
	ErrOfferNotFound = errors.New(ErrMsgOfferNotFound)
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Authorization errors
	ErrNotOwner = errors.New(ErrMsgNotOwner)

	// Balance/inventory errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrIndexOutOfRange   = errors.New(ErrMsgIndexOutOfRange)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
