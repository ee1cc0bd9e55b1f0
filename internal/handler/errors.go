package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPriceParam = "Invalid %s parameter"
	ErrMsgInvalidPageParam  = "Invalid page parameter"
	ErrMsgInvalidSortParam  = "Invalid sort parameter. Valid options: newest, price_asc, price_desc"

	// Identity error messages
	ErrMsgMissingAccountHeader = "Missing X-Account-ID header"
	ErrMsgInvalidAccountHeader = "Invalid X-Account-ID header"

	// Exchange operation error messages
	ErrMsgCreateListingFailed = "Failed to create listing"
	ErrMsgCancelListingFailed = "Failed to cancel listing"
	ErrMsgBuyFailed           = "Failed to buy listing"
	ErrMsgMakeOfferFailed     = "Failed to make offer"
	ErrMsgAcceptOfferFailed   = "Failed to accept offer"
	ErrMsgRejectOfferFailed   = "Failed to reject offer"
	ErrMsgWithdrawOfferFailed = "Failed to withdraw offer"
	ErrMsgRegisterFailed      = "Failed to register account"
	ErrMsgGetAccountFailed    = "Failed to get account"

	// Market error messages
	ErrMsgBrowseFailed = "Failed to query the market"
)

// Success messages for API responses
const (
	MsgOfferWithdrawnSuccess = "Offer withdrawn"
)
