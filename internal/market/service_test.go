package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/repository"
)

// MockRepository implements repository.Market for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockRepository) ListPendingOffers(ctx context.Context) ([]domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

var _ repository.Market = (*MockRepository)(nil)

func listingFixture(id, name string, rarity domain.Rarity, price int64, age time.Duration) domain.Listing {
	return domain.Listing{
		ID:          id,
		SellerID:    "acct-seller",
		Item:        domain.ItemSnapshot{ItemID: 1, Name: name, Rarity: rarity},
		AskingPrice: price,
		Status:      domain.ListingStatusActive,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(-age),
	}
}

func fixtureListings() []domain.Listing {
	return []domain.Listing{
		listingFixture("l1", "Starfall Blade", domain.RarityEpic, 750, 3*time.Hour),
		listingFixture("l2", "Moonlit Charm", domain.RarityCommon, 50, 2*time.Hour),
		listingFixture("l3", "Sunforged Blade", domain.RarityLegendary, 2000, 1*time.Hour),
		listingFixture("l4", "River Stone", domain.RarityCommon, 10, 30*time.Minute),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	page := Apply(fixtureListings(), Query{Search: "blade"}, 10)

	require.Len(t, page.Listings, 2)
	assert.ElementsMatch(t, []string{"l1", "l3"},
		[]string{page.Listings[0].ID, page.Listings[1].ID})
}

func TestApply_RarityFilter(t *testing.T) {
	page := Apply(fixtureListings(), Query{Rarity: string(domain.RarityCommon)}, 10)
	require.Len(t, page.Listings, 2)

	// "All" disables the filter entirely
	page = Apply(fixtureListings(), Query{Rarity: RarityAll}, 10)
	assert.Len(t, page.Listings, 4)
}

func TestApply_PriceRangeIsInclusive(t *testing.T) {
	page := Apply(fixtureListings(), Query{MinPrice: int64Ptr(50), MaxPrice: int64Ptr(750)}, 10)

	require.Len(t, page.Listings, 2)
	assert.ElementsMatch(t, []string{"l1", "l2"},
		[]string{page.Listings[0].ID, page.Listings[1].ID})
}

func TestApply_SortOrders(t *testing.T) {
	listings := fixtureListings()

	t.Run("newest first is the default", func(t *testing.T) {
		page := Apply(listings, Query{}, 10)
		require.Len(t, page.Listings, 4)
		assert.Equal(t, "l4", page.Listings[0].ID)
		assert.Equal(t, "l1", page.Listings[3].ID)
	})

	t.Run("price ascending", func(t *testing.T) {
		page := Apply(listings, Query{Sort: SortPriceAsc}, 10)
		assert.Equal(t, "l4", page.Listings[0].ID)
		assert.Equal(t, "l3", page.Listings[3].ID)
	})

	t.Run("price descending", func(t *testing.T) {
		page := Apply(listings, Query{Sort: SortPriceDesc}, 10)
		assert.Equal(t, "l3", page.Listings[0].ID)
		assert.Equal(t, "l4", page.Listings[3].ID)
	})
}

func TestApply_Pagination(t *testing.T) {
	listings := fixtureListings()

	page := Apply(listings, Query{Page: 1}, 3)
	assert.Len(t, page.Listings, 3)
	assert.Equal(t, 4, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	page = Apply(listings, Query{Page: 2}, 3)
	assert.Len(t, page.Listings, 1)

	// Pages past the end are empty, not an error
	page = Apply(listings, Query{Page: 9}, 3)
	assert.Empty(t, page.Listings)
	assert.Equal(t, 4, page.TotalItems)

	// Page zero is normalized to the first page
	page = Apply(listings, Query{Page: 0}, 3)
	assert.Len(t, page.Listings, 3)
	assert.Equal(t, 1, page.Page)
}

func TestApply_FiltersCompose(t *testing.T) {
	page := Apply(fixtureListings(), Query{
		Search:   "blade",
		Rarity:   string(domain.RarityLegendary),
		MinPrice: int64Ptr(1000),
	}, 10)

	require.Len(t, page.Listings, 1)
	assert.Equal(t, "l3", page.Listings[0].ID)
}

func TestApply_EmptyInput(t *testing.T) {
	page := Apply(nil, Query{Search: "anything"}, 10)

	assert.Empty(t, page.Listings)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 0, page.TotalPages)
}

func TestBrowse_CachesUntilInvalidated(t *testing.T) {
	mockRepo := &MockRepository{}
	svc, err := NewService(mockRepo, 10)
	require.NoError(t, err)
	ctx := context.Background()

	mockRepo.On("ListActiveListings", mock.Anything).Return(fixtureListings(), nil).Twice()

	// Two queries, one fetch
	_, err = svc.Browse(ctx, Query{})
	require.NoError(t, err)
	_, err = svc.Browse(ctx, Query{Search: "blade"})
	require.NoError(t, err)

	// Invalidation forces a refetch on the next query
	svc.Invalidate()
	_, err = svc.Browse(ctx, Query{})
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(""))
	assert.True(t, ValidSort(SortNewest))
	assert.True(t, ValidSort(SortPriceAsc))
	assert.True(t, ValidSort(SortPriceDesc))
	assert.False(t, ValidSort("cheapest"))
}
