package domain

import "time"

// Account holds a player's currency balance and inventory.
// The inventory is an ordered, index-addressed sequence of item snapshots,
// not a set: duplicate items are legal and distinguished only by position.
// Entries are moved, never aliased - an item lives in exactly one account's
// inventory or in exactly one active listing's custody, never both.
type Account struct {
	ID          string         `json:"account_id"`
	DisplayName string         `json:"display_name"`
	Balance     int64          `json:"balance"`
	Inventory   []ItemSnapshot `json:"inventory"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
