package exchange

import (
	"fmt"

	"github.com/softpaws/bazaar/internal/domain"
)

// validatePrice checks an asking price for a new listing.
// Prices are strictly positive and capped at domain.MaxTradePrice.
func validatePrice(price int64) error {
	if price <= 0 || price > domain.MaxTradePrice {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPrice, price)
	}
	return nil
}

// validateAmount checks an offer amount. Same bounds as asking prices.
func validateAmount(amount int64) error {
	if amount <= 0 || amount > domain.MaxTradePrice {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return nil
}
