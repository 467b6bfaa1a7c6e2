package interfaces

import (
	"context"

	"mocktail/internal/domain"
)

// HistoryStore is the durable, append-only record of dispensed line items
// (Adapter/JSONFile, Adapter/Postgres).
//
// Load returns the full history in dispense order; a store with no prior
// writes yields an empty sequence, not an error. Append places the given
// items after all prior entries, preserving their relative order.
// Implementations must be safe for concurrent checkouts.
type HistoryStore interface {
	Load(ctx context.Context) ([]domain.OrderItem, error)
	Append(ctx context.Context, items []domain.OrderItem) error
}
