package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/logger"
)

// Identity header names. The identity collaborator in front of this service
// authenticates the caller and stamps these headers; the exchange trusts
// them as-is.
const (
	HeaderAccountID   = "X-Account-ID"
	HeaderDisplayName = "X-Display-Name"
)

// CallerIdentity extracts the pre-authenticated caller identity from the
// request headers. If the account header is missing it writes a 401 and
// returns ok=false; a malformed account ID writes a 400.
func CallerIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	accountID := r.Header.Get(HeaderAccountID)
	if accountID == "" {
		logger.FromContext(r.Context()).Warn("Request without account identity")
		respondError(w, http.StatusUnauthorized, ErrMsgMissingAccountHeader)
		return domain.Identity{}, false
	}
	if _, err := uuid.Parse(accountID); err != nil {
		logger.FromContext(r.Context()).Warn("Request with malformed account identity", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAccountHeader)
		return domain.Identity{}, false
	}
	return domain.Identity{
		AccountID:   accountID,
		DisplayName: r.Header.Get(HeaderDisplayName),
	}, true
}

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// writes the error response itself on failure. If it returns an error the
// handler should just return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back
// to defaultValue when absent.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
