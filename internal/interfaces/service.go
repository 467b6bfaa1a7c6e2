package interfaces

import (
	"context"
	"encoding/json"

	"mocktail/internal/domain"
)

// CheckoutResult is the structured outcome of one checkout. Status is "ok"
// or "error"; DeviceReply carries the controller's raw reply when the
// dispense happened (including the case where the history append failed
// afterwards, so the caller knows the physical action took place).
type CheckoutResult struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	DeviceReply json.RawMessage `json:"deviceReply,omitempty"`
}

// CheckoutService runs the submit-order pipeline:
// validate -> relay -> persist -> notify.
//
// A non-nil error classifies the failure (domain.ErrInvalidOrder,
// ErrDeviceUnreachable, ErrDeviceRejected, ErrHistoryNotRecorded); the
// returned result is always non-nil and ready to serve to the client.
type CheckoutService interface {
	Checkout(ctx context.Context, items []domain.OrderItem) (*CheckoutResult, error)
}

// RecommendationService derives the most-ordered drink names from history.
type RecommendationService interface {
	TopDrinks(ctx context.Context, limit int) ([]string, error)
}
