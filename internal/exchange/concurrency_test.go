package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/repository"
)

// memoryStore is an in-memory repository.Exchange with the same conditional
// write semantics as the Postgres implementation: a status transition claims
// the row until the transaction commits or rolls back, and a concurrent
// transition against the same row fails its compare. It exists so the race
// tests exercise real goroutine interleavings without a database.
type memoryStore struct {
	mu            sync.Mutex
	balances      map[string]int64
	inventories   map[string][]domain.ItemSnapshot
	listings      map[string]domain.Listing
	offers        map[string]domain.Offer
	claimedList   map[string]bool
	claimedOffers map[string]bool
	nextID        int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		balances:      make(map[string]int64),
		inventories:   make(map[string][]domain.ItemSnapshot),
		listings:      make(map[string]domain.Listing),
		offers:        make(map[string]domain.Offer),
		claimedList:   make(map[string]bool),
		claimedOffers: make(map[string]bool),
	}
}

func (s *memoryStore) addAccount(id string, balance int64, items ...domain.ItemSnapshot) {
	s.balances[id] = balance
	s.inventories[id] = items
}

func (s *memoryStore) addListing(l domain.Listing) {
	s.listings[l.ID] = l
}

func (s *memoryStore) addOffer(o domain.Offer) {
	s.offers[o.ID] = o
}

func (s *memoryStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	inv := append([]domain.ItemSnapshot(nil), s.inventories[accountID]...)
	return &domain.Account{ID: accountID, Balance: balance, Inventory: inv}, nil
}

func (s *memoryStore) UpsertAccount(ctx context.Context, accountID, displayName string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[accountID]; !ok {
		s.balances[accountID] = 0
	}
	return &domain.Account{ID: accountID, DisplayName: displayName, Balance: s.balances[accountID]}, nil
}

func (s *memoryStore) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &l, nil
}

func (s *memoryStore) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[offerID]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	return &o, nil
}

func (s *memoryStore) BeginTx(ctx context.Context) (repository.ExchangeTx, error) {
	return &memoryTx{store: s, balanceDeltas: make(map[string]int64)}, nil
}

var _ repository.Exchange = (*memoryStore)(nil)

// memoryTx buffers mutations and applies them on Commit. Claimed status
// transitions hold their rows until the transaction resolves.
type memoryTx struct {
	store         *memoryStore
	done          bool
	balanceDeltas map[string]int64
	appends       []struct {
		accountID string
		item      domain.ItemSnapshot
	}
	removedItems  map[string]domain.ItemSnapshot
	newListings   []domain.Listing
	newOffers     []domain.Offer
	listingStatus map[string]domain.ListingStatus
	offerStatus   map[string]domain.OfferStatus
	deletedOffers []string
	sweptListings []string
}

func (t *memoryTx) Commit(ctx context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true

	for id, delta := range t.balanceDeltas {
		s.balances[id] += delta
	}
	for _, a := range t.appends {
		s.inventories[a.accountID] = append(s.inventories[a.accountID], a.item)
	}
	for _, l := range t.newListings {
		s.listings[l.ID] = l
	}
	for _, o := range t.newOffers {
		s.offers[o.ID] = o
	}
	for id, status := range t.listingStatus {
		l := s.listings[id]
		l.Status = status
		s.listings[id] = l
		delete(s.claimedList, id)
	}
	for id, status := range t.offerStatus {
		o := s.offers[id]
		o.Status = status
		s.offers[id] = o
		delete(s.claimedOffers, id)
	}
	for _, id := range t.deletedOffers {
		delete(s.offers, id)
	}
	for _, listingID := range t.sweptListings {
		for id, o := range s.offers {
			if o.ListingID == listingID && o.Status == domain.OfferStatusPending && !s.claimedOffers[id] {
				if _, claimed := t.offerStatus[id]; claimed {
					continue
				}
				o.Status = domain.OfferStatusRejected
				s.offers[id] = o
			}
		}
	}
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true

	// Release claims; buffered mutations are discarded
	for id := range t.listingStatus {
		delete(s.claimedList, id)
	}
	for id := range t.offerStatus {
		delete(s.claimedOffers, id)
	}
	// Undo buffered inventory removals
	for accountID, item := range t.removedItems {
		s.inventories[accountID] = append(s.inventories[accountID], item)
	}
	return nil
}

func (t *memoryTx) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return t.store.GetAccount(ctx, accountID)
}

func (t *memoryTx) Debit(ctx context.Context, accountID string, amount int64) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if balance+t.balanceDeltas[accountID] < amount {
		return domain.ErrInsufficientFunds
	}
	t.balanceDeltas[accountID] -= amount
	return nil
}

func (t *memoryTx) Credit(ctx context.Context, accountID string, amount int64) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[accountID]; !ok {
		return domain.ErrAccountNotFound
	}
	t.balanceDeltas[accountID] += amount
	return nil
}

func (t *memoryTx) RemoveInventoryAt(ctx context.Context, accountID string, index int) (*domain.ItemSnapshot, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventories[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if index < 0 || index >= len(inv) {
		return nil, domain.ErrIndexOutOfRange
	}
	item := inv[index]
	s.inventories[accountID] = append(append([]domain.ItemSnapshot(nil), inv[:index]...), inv[index+1:]...)
	if t.removedItems == nil {
		t.removedItems = make(map[string]domain.ItemSnapshot)
	}
	t.removedItems[accountID] = item
	return &item, nil
}

func (t *memoryTx) AppendInventory(ctx context.Context, accountID string, item domain.ItemSnapshot) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.appends = append(t.appends, struct {
		accountID string
		item      domain.ItemSnapshot
	}{accountID, item})
	return nil
}

func (t *memoryTx) InsertListing(ctx context.Context, listing domain.Listing) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.newListings = append(t.newListings, listing)
	return nil
}

func (t *memoryTx) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	return t.store.GetListing(ctx, listingID)
}

func (t *memoryTx) TransitionListingStatus(ctx context.Context, listingID string, expected, newStatus domain.ListingStatus) (bool, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[listingID]
	if !ok {
		return false, nil
	}
	if l.Status != expected || s.claimedList[listingID] {
		return false, nil
	}
	s.claimedList[listingID] = true
	if t.listingStatus == nil {
		t.listingStatus = make(map[string]domain.ListingStatus)
	}
	t.listingStatus[listingID] = newStatus
	return true, nil
}

func (t *memoryTx) InsertOffer(ctx context.Context, offer domain.Offer) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.newOffers = append(t.newOffers, offer)
	return nil
}

func (t *memoryTx) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	return t.store.GetOffer(ctx, offerID)
}

func (t *memoryTx) TransitionOfferStatus(ctx context.Context, offerID string, expected, newStatus domain.OfferStatus) (bool, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[offerID]
	if !ok {
		return false, nil
	}
	if o.Status != expected || s.claimedOffers[offerID] {
		return false, nil
	}
	s.claimedOffers[offerID] = true
	if t.offerStatus == nil {
		t.offerStatus = make(map[string]domain.OfferStatus)
	}
	t.offerStatus[offerID] = newStatus
	return true, nil
}

func (t *memoryTx) DeleteOffer(ctx context.Context, offerID string) (bool, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[offerID]
	if !ok || o.Status != domain.OfferStatusPending || s.claimedOffers[offerID] {
		return false, nil
	}
	s.claimedOffers[offerID] = true
	if t.offerStatus == nil {
		t.offerStatus = make(map[string]domain.OfferStatus)
	}
	t.deletedOffers = append(t.deletedOffers, offerID)
	t.offerStatus[offerID] = o.Status // hold the claim until commit
	return true, nil
}

func (t *memoryTx) RejectPendingOffersByListing(ctx context.Context, listingID string) (int64, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	t.sweptListings = append(t.sweptListings, listingID)
	var n int64
	for id, o := range s.offers {
		if o.ListingID == listingID && o.Status == domain.OfferStatusPending && !s.claimedOffers[id] {
			n++
		}
	}
	return n, nil
}

var _ repository.ExchangeTx = (*memoryTx)(nil)

// TestBuy_Concurrent_ExactlyOneWinner races many buyers for one listing.
// Exactly one Buy must succeed; every loser fails with ErrAlreadySold and no
// side effects, and money plus items are conserved across all accounts.
func TestBuy_Concurrent_ExactlyOneWinner(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, nil)
	ctx := context.Background()

	item := createTestItem()
	store.addAccount("acct-seller", 0)
	store.addListing(domain.Listing{
		ID:          "listing-hot",
		SellerID:    "acct-seller",
		Item:        item,
		AskingPrice: 100,
		Status:      domain.ListingStatusActive,
	})

	buyers := 32
	for i := 0; i < buyers; i++ {
		store.addAccount(fmt.Sprintf("acct-buyer-%d", i), 100)
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller := domain.Identity{AccountID: fmt.Sprintf("acct-buyer-%d", i)}
			_, errs[i] = svc.Buy(ctx, caller, "listing-hot")
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		if err == nil {
			winners++
			continue
		}
		require.ErrorIs(t, err, domain.ErrAlreadySold, "buyer %d", i)
	}
	assert.Equal(t, 1, winners, "exactly one buyer must win")

	// The winner paid and holds the item; every loser kept their balance
	seller, err := store.GetAccount(ctx, "acct-seller")
	require.NoError(t, err)
	assert.Equal(t, int64(100), seller.Balance)

	itemHolders := 0
	for i := 0; i < buyers; i++ {
		acct, err := store.GetAccount(ctx, fmt.Sprintf("acct-buyer-%d", i))
		require.NoError(t, err)
		if len(acct.Inventory) == 1 {
			itemHolders++
			assert.Equal(t, int64(0), acct.Balance, "winner paid the asking price")
		} else {
			assert.Equal(t, int64(100), acct.Balance, "loser %d must be untouched", i)
		}
	}
	assert.Equal(t, 1, itemHolders)

	listing, err := store.GetListing(ctx, "listing-hot")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusCompleted, listing.Status)
}

// TestBuyVersusCancel_Race races a buyer against the seller's cancel.
// Whichever transition lands first wins; the other fails cleanly, and the
// item ends up in exactly one inventory.
func TestBuyVersusCancel_Race(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		store := newMemoryStore()
		svc := NewService(store, nil)

		item := createTestItem()
		store.addAccount("acct-seller", 0)
		store.addAccount("acct-buyer", 500)
		store.addListing(domain.Listing{
			ID:          "listing-1",
			SellerID:    "acct-seller",
			Item:        item,
			AskingPrice: 200,
			Status:      domain.ListingStatusActive,
		})

		var wg sync.WaitGroup
		var buyErr, cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, buyErr = svc.Buy(ctx, domain.Identity{AccountID: "acct-buyer"}, "listing-1")
		}()
		go func() {
			defer wg.Done()
			_, cancelErr = svc.CancelListing(ctx, domain.Identity{AccountID: "acct-seller"}, "listing-1")
		}()
		wg.Wait()

		require.True(t, (buyErr == nil) != (cancelErr == nil),
			"exactly one of buy/cancel must succeed: buy=%v cancel=%v", buyErr, cancelErr)

		seller, err := store.GetAccount(ctx, "acct-seller")
		require.NoError(t, err)
		buyer, err := store.GetAccount(ctx, "acct-buyer")
		require.NoError(t, err)

		if buyErr == nil {
			assert.ErrorIs(t, cancelErr, domain.ErrAlreadyFinalized)
			assert.Len(t, buyer.Inventory, 1)
			assert.Empty(t, seller.Inventory)
			assert.Equal(t, int64(200), seller.Balance)
		} else {
			assert.ErrorIs(t, buyErr, domain.ErrAlreadySold)
			assert.Len(t, seller.Inventory, 1)
			assert.Empty(t, buyer.Inventory)
			assert.Equal(t, int64(500), buyer.Balance)
		}
	}
}

// TestAcceptVersusWithdraw_Race races the seller accepting an offer against
// the buyer withdrawing it. At most one side wins.
func TestAcceptVersusWithdraw_Race(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		store := newMemoryStore()
		svc := NewService(store, nil)

		item := createTestItem()
		store.addAccount("acct-seller", 0)
		store.addAccount("acct-buyer", 1000)
		store.addListing(domain.Listing{
			ID:          "listing-1",
			SellerID:    "acct-seller",
			Item:        item,
			AskingPrice: 400,
			Status:      domain.ListingStatusActive,
		})
		store.addOffer(domain.Offer{
			ID:        "offer-1",
			ListingID: "listing-1",
			BuyerID:   "acct-buyer",
			Amount:    300,
			Status:    domain.OfferStatusPending,
		})

		var wg sync.WaitGroup
		var acceptErr, withdrawErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, acceptErr = svc.AcceptOffer(ctx, domain.Identity{AccountID: "acct-seller"}, "offer-1")
		}()
		go func() {
			defer wg.Done()
			withdrawErr = svc.WithdrawOffer(ctx, domain.Identity{AccountID: "acct-buyer"}, "offer-1")
		}()
		wg.Wait()

		require.False(t, acceptErr == nil && withdrawErr == nil,
			"accept and withdraw cannot both succeed")

		buyer, err := store.GetAccount(ctx, "acct-buyer")
		require.NoError(t, err)

		if acceptErr == nil {
			assert.Equal(t, int64(700), buyer.Balance)
			assert.Len(t, buyer.Inventory, 1)
		} else if withdrawErr == nil {
			assert.Equal(t, int64(1000), buyer.Balance)
			_, err := store.GetOffer(ctx, "offer-1")
			assert.ErrorIs(t, err, domain.ErrOfferNotFound)
		}
	}
}
