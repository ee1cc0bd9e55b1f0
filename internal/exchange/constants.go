package exchange

// Log message constants
const (
	LogMsgRegisterAccountCalled = "RegisterAccount called"
	LogMsgCreateListingCalled   = "CreateListing called"
	LogMsgCancelListingCalled   = "CancelListing called"
	LogMsgBuyCalled             = "Buy called"
	LogMsgMakeOfferCalled       = "MakeOffer called"
	LogMsgAcceptOfferCalled     = "AcceptOffer called"
	LogMsgRejectOfferCalled     = "RejectOffer called"
	LogMsgWithdrawOfferCalled   = "WithdrawOffer called"

	LogMsgListingCreated   = "Listing created"
	LogMsgListingCancelled = "Listing cancelled"
	LogMsgListingSold      = "Listing sold"
	LogMsgOfferMade        = "Offer made"
	LogMsgOfferAccepted    = "Offer accepted"
	LogMsgOfferRejected    = "Offer rejected"
	LogMsgOfferWithdrawn   = "Offer withdrawn"

	LogMsgPublishFailed = "Failed to publish exchange event"
)

// Error message format constants
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)
