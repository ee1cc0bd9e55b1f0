package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same query
// helpers serve the repository surface and the transactional surface.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseAccountUUID parses an account ID string to uuid.UUID with consistent error message.
func parseAccountUUID(accountID string) (uuid.UUID, error) {
	u, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid account id: %w", err)
	}
	return u, nil
}

func marshalInventory(inv []domain.ItemSnapshot) ([]byte, error) {
	if inv == nil {
		inv = []domain.ItemSnapshot{}
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return data, nil
}

func unmarshalInventory(raw []byte) ([]domain.ItemSnapshot, error) {
	var inv []domain.ItemSnapshot
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	return inv, nil
}

func marshalItem(item domain.ItemSnapshot) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item snapshot: %w", err)
	}
	return data, nil
}
