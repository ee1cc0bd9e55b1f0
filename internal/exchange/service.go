package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/event"
	"github.com/softpaws/bazaar/internal/logger"
	"github.com/softpaws/bazaar/internal/metrics"
	"github.com/softpaws/bazaar/internal/repository"
)

// Service defines the interface for exchange operations.
// Every mutating operation executes as a single atomic transaction: all
// preconditions are re-validated inside that transaction, and a lost
// concurrency race surfaces as a clean error with zero side effects.
type Service interface {
	CreateListing(ctx context.Context, caller domain.Identity, inventoryIndex int, askingPrice int64) (*domain.Listing, error)
	CancelListing(ctx context.Context, caller domain.Identity, listingID string) (*domain.Listing, error)
	Buy(ctx context.Context, caller domain.Identity, listingID string) (*domain.Listing, error)
	MakeOffer(ctx context.Context, caller domain.Identity, listingID string, amount int64) (*domain.Offer, error)
	AcceptOffer(ctx context.Context, caller domain.Identity, offerID string) (*domain.Offer, error)
	RejectOffer(ctx context.Context, caller domain.Identity, offerID string) (*domain.Offer, error)
	WithdrawOffer(ctx context.Context, caller domain.Identity, offerID string) error
	RegisterAccount(ctx context.Context, caller domain.Identity) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// Publisher is the event sink the engine notifies after commit
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

type service struct {
	repo      repository.Exchange
	publisher Publisher
	now       func() time.Time
	newID     func() string
}

// NewService creates a new exchange service
func NewService(repo repository.Exchange, publisher Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// RegisterAccount lands the identity handshake: it creates the account row on
// first contact and refreshes the display name afterwards.
func (s *service) RegisterAccount(ctx context.Context, caller domain.Identity) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterAccountCalled, "account_id", caller.AccountID)

	account, err := s.repo.UpsertAccount(ctx, caller.AccountID, caller.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return account, nil
}

// GetAccount returns the account's current balance and inventory. Clients
// call this after every successful mutation instead of reconciling local
// state (pessimistic resync).
func (s *service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, accountID)
}

// publish sends an event after a committed transaction. Publish failures are
// logged, never surfaced: the trade is already durable.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
