package handler

import (
	"net/http"
	"strconv"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/logger"
	"github.com/softpaws/bazaar/internal/market"
)

// HandleBrowseMarket runs a filtered, sorted, paginated query over the
// active listings. All parameters are optional query params:
// search, rarity, min_price, max_price, sort, page.
func HandleBrowseMarket(svc *market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		q := market.Query{
			Search: r.URL.Query().Get("search"),
			Rarity: r.URL.Query().Get("rarity"),
			Sort:   GetOptionalQueryParam(r, "sort", market.SortNewest),
			Page:   1,
		}

		if q.Rarity != "" && q.Rarity != market.RarityAll && !domain.ValidRarity(q.Rarity) {
			respondError(w, http.StatusBadRequest, "Unknown rarity tier")
			return
		}
		if !market.ValidSort(q.Sort) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSortParam)
			return
		}

		if raw := r.URL.Query().Get("min_price"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				respondError(w, http.StatusBadRequest, "Invalid min_price parameter")
				return
			}
			q.MinPrice = &v
		}
		if raw := r.URL.Query().Get("max_price"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				respondError(w, http.StatusBadRequest, "Invalid max_price parameter")
				return
			}
			q.MaxPrice = &v
		}
		if raw := r.URL.Query().Get("page"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidPageParam)
				return
			}
			q.Page = v
		}

		page, err := svc.Browse(r.Context(), q)
		if err != nil {
			log.Error("Market query failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgBrowseFailed)
			return
		}

		respondJSON(w, http.StatusOK, page)
	}
}

// HandlePendingOffers lists every pending offer, oldest first
func HandlePendingOffers(svc *market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offers, err := svc.PendingOffers(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Pending offers query failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgBrowseFailed)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: offers})
	}
}
