package interfaces

import (
	"context"
	"time"

	"mocktail/internal/domain"
)

// DispensedMessage announces a completed checkout: the controller accepted
// the order and the items were recorded in history.
type DispensedMessage struct {
	Items         []domain.OrderItem `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	DispensedAt   time.Time          `json:"dispensed_at"`
}

// DispenseNotifier publishes dispense announcements (Adapter/RabbitMQ).
// Publishing happens after the checkout is committed, so failures are
// logged by the caller and never fail the checkout.
type DispenseNotifier interface {
	PublishDispensed(ctx context.Context, msg DispensedMessage) error
}

// DispenseConsumer subscribes to dispense announcements (Adapter/RabbitMQ).
type DispenseConsumer interface {
	ConsumeDispenses(ctx context.Context, handler DispenseHandler) error
}

type DispenseHandler func(ctx context.Context, body []byte) error
