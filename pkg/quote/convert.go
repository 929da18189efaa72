package quote

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrQuoteUnavailable indicates no quote could be resolved for a symbol.
	ErrQuoteUnavailable = errors.New("price unavailable")

	// ErrInvalidAmount indicates the amount to convert is zero, negative or not finite.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrInvalidQuote indicates a quote carries a non-positive or non-finite price.
	ErrInvalidQuote = errors.New("invalid quote price")
)

// Convert turns an amount of the from instrument into the to instrument using
// the cross-rate of the two quotes: amount * from.Price / to.Price.
// Pure and deterministic; no rounding is applied here, display formatting is
// the caller's concern.
func Convert(from, to Quote, amount float64) (float64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	if !validPrice(from.Price) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuote, from.Currency)
	}
	if !validPrice(to.Price) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidQuote, to.Currency)
	}
	return amount * from.Price / to.Price, nil
}

// Convert resolves both symbols in the catalog and converts the amount between
// them. An unresolvable symbol fails with ErrQuoteUnavailable naming the
// symbol; callers must not substitute a default rate.
func (c Catalog) Convert(from, to string, amount float64) (float64, error) {
	fromQuote, ok := c.Resolve(from)
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrQuoteUnavailable, from)
	}
	toQuote, ok := c.Resolve(to)
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrQuoteUnavailable, to)
	}
	return Convert(fromQuote, toQuote, amount)
}

func validPrice(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
