// Package conversion declares the persistence contract for the ledger's
// conversion records.
package conversion

import (
	"context"

	"github.com/TheCodister/swapdesk/pkg/conversion"
	"github.com/google/uuid"
)

// Repository persists whole conversion records; records are created, replaced
// or deleted, never patched field by field.
type Repository interface {
	Create(ctx context.Context, record conversion.Record) error
	List(ctx context.Context) ([]conversion.Record, error)
	Update(ctx context.Context, id uuid.UUID, update conversion.Request) (*conversion.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
