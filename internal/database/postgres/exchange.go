package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/repository"
)

// ExchangeRepository implements the exchange repository for PostgreSQL.
// It also satisfies repository.Market for the read-only market view.
type ExchangeRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRepository creates a new ExchangeRepository
func NewExchangeRepository(db *pgxpool.Pool) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

// ExchangeTx implements repository.ExchangeTx
type ExchangeTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *ExchangeRepository) BeginTx(ctx context.Context) (repository.ExchangeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &ExchangeTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *ExchangeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *ExchangeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ---- Account operations ----

// GetAccount retrieves an account by ID
func (r *ExchangeRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, r.db, accountID)
}

// GetAccount for Tx
func (t *ExchangeTx) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, t.tx, accountID)
}

// UpsertAccount creates the account row on first contact and refreshes the
// display name on every later handshake.
func (r *ExchangeRepository) UpsertAccount(ctx context.Context, accountID, displayName string) (*domain.Account, error) {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO accounts (account_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (account_id)
		DO UPDATE SET display_name = EXCLUDED.display_name, updated_at = NOW()
		RETURNING account_id, display_name, balance, inventory, created_at, updated_at
	`

	return scanAccount(r.db.QueryRow(ctx, query, id, displayName))
}

// Debit subtracts amount from the account balance. The balance guard lives in
// the WHERE clause so a failed debit touches nothing.
func (t *ExchangeTx) Debit(ctx context.Context, accountID string, amount int64) error {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE account_id = $1 AND balance >= $2`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to debit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing account from an underfunded one
		var exists bool
		if err := t.tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check account existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return domain.ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to the account balance
func (t *ExchangeTx) Credit(ctx context.Context, accountID string, amount int64) error {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return nil
}

// RemoveInventoryAt removes and returns the item snapshot at index. The row
// is locked for the remainder of the transaction so the index cannot go stale
// between the read and the write.
func (t *ExchangeTx) RemoveInventoryAt(ctx context.Context, accountID string, index int) (*domain.ItemSnapshot, error) {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = t.tx.QueryRow(ctx,
		`SELECT inventory FROM accounts WHERE account_id = $1 FOR UPDATE`, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to lock inventory: %w", err)
	}

	inv, err := unmarshalInventory(raw)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(inv) {
		return nil, fmt.Errorf("%w: index %d, inventory size %d", domain.ErrIndexOutOfRange, index, len(inv))
	}

	item := inv[index]
	inv = append(inv[:index], inv[index+1:]...)

	data, err := marshalInventory(inv)
	if err != nil {
		return nil, err
	}

	if _, err := t.tx.Exec(ctx,
		`UPDATE accounts SET inventory = $2, updated_at = NOW() WHERE account_id = $1`,
		id, data,
	); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	return &item, nil
}

// AppendInventory appends an item snapshot to the end of the account's inventory
func (t *ExchangeTx) AppendInventory(ctx context.Context, accountID string, item domain.ItemSnapshot) error {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return err
	}

	data, err := marshalItem(item)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET inventory = inventory || $2::jsonb, updated_at = NOW()
		WHERE account_id = $1`,
		id, data,
	)
	if err != nil {
		return fmt.Errorf("failed to append inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return nil
}

// ---- Shared account helpers ----

func getAccount(ctx context.Context, q querier, accountID string) (*domain.Account, error) {
	id, err := parseAccountUUID(accountID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT account_id, display_name, balance, inventory, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`

	account, err := scanAccount(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		raw     []byte
	)
	if err := row.Scan(&account.ID, &account.DisplayName, &account.Balance, &raw,
		&account.CreatedAt, &account.UpdatedAt); err != nil {
		return nil, err
	}

	inv, err := unmarshalInventory(raw)
	if err != nil {
		return nil, err
	}
	account.Inventory = inv
	return &account, nil
}
