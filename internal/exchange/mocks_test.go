package exchange

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/repository"
)

// MockRepository implements repository.Exchange for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRepository) UpsertAccount(ctx context.Context, accountID, displayName string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRepository) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRepository) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ExchangeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ExchangeTx), args.Error(1)
}

// Ensure MockRepository implements repository.Exchange
var _ repository.Exchange = (*MockRepository)(nil)

// MockTx implements repository.ExchangeTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockTx) Debit(ctx context.Context, accountID string, amount int64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockTx) Credit(ctx context.Context, accountID string, amount int64) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

func (m *MockTx) RemoveInventoryAt(ctx context.Context, accountID string, index int) (*domain.ItemSnapshot, error) {
	args := m.Called(ctx, accountID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemSnapshot), args.Error(1)
}

func (m *MockTx) AppendInventory(ctx context.Context, accountID string, item domain.ItemSnapshot) error {
	args := m.Called(ctx, accountID, item)
	return args.Error(0)
}

func (m *MockTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockTx) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockTx) TransitionListingStatus(ctx context.Context, listingID string, expected, newStatus domain.ListingStatus) (bool, error) {
	args := m.Called(ctx, listingID, expected, newStatus)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) InsertOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockTx) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockTx) TransitionOfferStatus(ctx context.Context, offerID string, expected, newStatus domain.OfferStatus) (bool, error) {
	args := m.Called(ctx, offerID, expected, newStatus)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) DeleteOffer(ctx context.Context, offerID string) (bool, error) {
	args := m.Called(ctx, offerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) RejectPendingOffersByListing(ctx context.Context, listingID string) (int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure MockTx implements repository.ExchangeTx
var _ repository.ExchangeTx = (*MockTx)(nil)

// MockPublisher implements Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

var _ Publisher = (*MockPublisher)(nil)
