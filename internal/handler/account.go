package handler

import (
	"net/http"

	"github.com/softpaws/bazaar/internal/exchange"
)

// HandleRegisterAccount creates or refreshes the caller's account row.
// Idempotent: registering twice updates the display name and nothing else.
func HandleRegisterAccount(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		account, err := svc.RegisterAccount(r.Context(), caller)
		if err != nil {
			respondServiceError(w, r, "Register account", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: account})
	}
}

// HandleGetAccount returns the caller's balance and inventory. Clients call
// this after every successful mutation instead of trusting local state.
func HandleGetAccount(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIdentity(w, r)
		if !ok {
			return
		}

		account, err := svc.GetAccount(r.Context(), caller.AccountID)
		if err != nil {
			respondServiceError(w, r, "Get account", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: account})
	}
}
