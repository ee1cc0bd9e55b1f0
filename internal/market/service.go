package market

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/logger"
	"github.com/softpaws/bazaar/internal/repository"
)

// Sort orders accepted by Query
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// RarityAll disables the rarity filter
const RarityAll = "All"

// Query is one market page request. Zero values mean "no filter": empty
// Search matches everything, empty/All Rarity disables the tier filter, nil
// price bounds disable the range check.
type Query struct {
	Search   string
	Rarity   string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
	Page     int
}

// Page is one page of market results plus enough shape for pagination
// controls.
type Page struct {
	Listings   []domain.Listing `json:"listings"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

// Apply runs a query against a set of active listings: substring match on
// item name (case-insensitive), rarity equality, inclusive price range, one
// of three sort orders, then a fixed-size page. Pure function of its inputs;
// safe to recompute on every change-feed signal.
func Apply(listings []domain.Listing, q Query, pageSize int) Page {
	filtered := make([]domain.Listing, 0, len(listings))
	search := strings.ToLower(q.Search)

	for _, l := range listings {
		if search != "" && !strings.Contains(strings.ToLower(l.Item.Name), search) {
			continue
		}
		if q.Rarity != "" && q.Rarity != RarityAll && string(l.Item.Rarity) != q.Rarity {
			continue
		}
		if q.MinPrice != nil && l.AskingPrice < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && l.AskingPrice > *q.MaxPrice {
			continue
		}
		filtered = append(filtered, l)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].AskingPrice < filtered[j].AskingPrice
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].AskingPrice > filtered[j].AskingPrice
		})
	default: // SortNewest
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	page := q.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Listings:   filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// snapshotKey is the single cache key for the full active-listings fetch.
// The cache is an LRU only because that is the shape the library offers; the
// point is the invalidation hook, not eviction pressure.
const snapshotKey = "active-listings"

// Service answers market queries from a cached snapshot of active listings.
// The change feed invalidates the snapshot on every listing mutation, so a
// query never recomputes against state older than the last signal.
type Service struct {
	repo     repository.Market
	cache    *lru.Cache[string, []domain.Listing]
	pageSize int
}

// NewService creates a market query service with the given fixed page size.
func NewService(repo repository.Market, pageSize int) (*Service, error) {
	cache, err := lru.New[string, []domain.Listing](1)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, cache: cache, pageSize: pageSize}, nil
}

// Browse runs a query against the current set of active listings.
func (s *Service) Browse(ctx context.Context, q Query) (*Page, error) {
	listings, err := s.activeListings(ctx)
	if err != nil {
		return nil, err
	}
	page := Apply(listings, q, s.pageSize)
	return &page, nil
}

// PendingOffers returns the full set of pending offers, newest last. Offers
// are low-volume and per-listing, so they bypass the snapshot cache.
func (s *Service) PendingOffers(ctx context.Context) ([]domain.Offer, error) {
	return s.repo.ListPendingOffers(ctx)
}

// Invalidate drops the cached snapshot. The change feed calls this on every
// listings-changed signal.
func (s *Service) Invalidate() {
	s.cache.Purge()
}

func (s *Service) activeListings(ctx context.Context) ([]domain.Listing, error) {
	if cached, ok := s.cache.Get(snapshotKey); ok {
		return cached, nil
	}

	listings, err := s.repo.ListActiveListings(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Add(snapshotKey, listings)

	logger.FromContext(ctx).Debug(LogMsgSnapshotRefreshed, "listings", len(listings))
	return listings, nil
}
