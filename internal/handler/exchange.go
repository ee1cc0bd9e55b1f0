package handler

import (
	"net/http"

	"github.com/softpaws/bazaar/internal/exchange"
	"github.com/softpaws/bazaar/internal/logger"
)

// Request bodies for exchange operations

type CreateListingRequest struct {
	InventoryIndex int   `json:"inventory_index" validate:"gte=0"`
	AskingPrice    int64 `json:"asking_price" validate:"required,gt=0"`
}

type CancelListingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

type BuyRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
}

type MakeOfferRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// OfferActionRequest is shared by accept, reject and withdraw
type OfferActionRequest struct {
	OfferID string `json:"offer_id" validate:"required,uuid"`
}

// HandleCreateListing lists an inventory item for sale
func HandleCreateListing(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req CreateListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
			return
		}

		listing, err := svc.CreateListing(r.Context(), caller, req.InventoryIndex, req.AskingPrice)
		if err != nil {
			respondServiceError(w, r, "Create listing", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: listing})
	}
}

// HandleCancelListing cancels the caller's own active listing
func HandleCancelListing(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req CancelListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
			return
		}

		listing, err := svc.CancelListing(r.Context(), caller, req.ListingID)
		if err != nil {
			respondServiceError(w, r, "Cancel listing", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: listing})
	}
}

// HandleBuy purchases an active listing at its asking price
func HandleBuy(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req BuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy"); err != nil {
			return
		}

		listing, err := svc.Buy(r.Context(), caller, req.ListingID)
		if err != nil {
			respondServiceError(w, r, "Buy", err)
			return
		}

		logger.FromContext(r.Context()).Info("Purchase settled",
			"listing_id", req.ListingID, "buyer_id", caller.AccountID)
		respondJSON(w, http.StatusOK, DataResponse{Data: listing})
	}
}

// HandleMakeOffer records a counter-price against an active listing
func HandleMakeOffer(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req MakeOfferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Make offer"); err != nil {
			return
		}

		offer, err := svc.MakeOffer(r.Context(), caller, req.ListingID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Make offer", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: offer})
	}
}

// HandleAcceptOffer completes a trade at the offered amount
func HandleAcceptOffer(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req OfferActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Accept offer"); err != nil {
			return
		}

		offer, err := svc.AcceptOffer(r.Context(), caller, req.OfferID)
		if err != nil {
			respondServiceError(w, r, "Accept offer", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offer})
	}
}

// HandleRejectOffer finalizes a pending offer as rejected
func HandleRejectOffer(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req OfferActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reject offer"); err != nil {
			return
		}

		offer, err := svc.RejectOffer(r.Context(), caller, req.OfferID)
		if err != nil {
			respondServiceError(w, r, "Reject offer", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offer})
	}
}

// HandleWithdrawOffer removes the caller's own pending offer
func HandleWithdrawOffer(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		var req OfferActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw offer"); err != nil {
			return
		}

		if err := svc.WithdrawOffer(r.Context(), caller, req.OfferID); err != nil {
			respondServiceError(w, r, "Withdraw offer", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgOfferWithdrawnSuccess})
	}
}
