// Package conversion holds the conversion-history domain types shared by the
// ledger client, the ledger web API and the swap workflow.
package conversion

import (
	"errors"
	"time"
)

var (
	// ErrLedgerWriteFailed indicates the ledger rejected or failed a create call.
	ErrLedgerWriteFailed = errors.New("failed to create conversion history")

	// ErrLedgerReadFailed indicates the ledger view could not be fetched.
	ErrLedgerReadFailed = errors.New("failed to fetch conversions")

	// ErrLedgerDeleteFailed indicates a delete call did not succeed. Absence of
	// the id is surfaced the same way; the server decides whether absence is an
	// error.
	ErrLedgerDeleteFailed = errors.New("failed to delete conversion")
)

// Request is a conversion submitted to the ledger. Immutable once sent.
type Request struct {
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	FromAmount   float64   `json:"fromAmount"`
	ToAmount     float64   `json:"toAmount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Record is a persisted conversion, owned by the ledger. The client never
// mutates a record in place, only creates or deletes whole records.
type Record struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	FromAmount   float64   `json:"fromAmount"`
	ToAmount     float64   `json:"toAmount"`
	Date         time.Time `json:"date"`
}
