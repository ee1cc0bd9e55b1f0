package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; log and bail
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps the error to a
// user-visible HTTP response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Warn(opName+" failed", "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Lookup messages
	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgListingNotFoundError = "Listing not found"
	ErrMsgOfferNotFoundError   = "Offer not found"

	// Concurrency race messages
	ErrMsgAlreadySoldError      = "That listing is gone - someone got there first"
	ErrMsgAlreadyFinalizedError = "Already finalized"

	// Authorization messages
	ErrMsgNotOwnerError = "You are not allowed to do that"

	// Funds and inventory messages
	ErrMsgNotEnoughMoneyError = "Not enough money"
	ErrMsgItemNotFoundError   = "No item at that inventory slot"

	// Validation messages
	ErrMsgInvalidPriceError = "Price must be a positive amount"
	ErrMsgInvalidOfferError = "Offer must be a positive amount"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Lost concurrency races map to 409: the request was well-formed,
// the world moved.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrOfferNotFound):
		return http.StatusNotFound, ErrMsgOfferNotFoundError
	case errors.Is(err, domain.ErrAlreadySold):
		return http.StatusConflict, ErrMsgAlreadySoldError
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict, ErrMsgAlreadyFinalizedError
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidOfferError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
