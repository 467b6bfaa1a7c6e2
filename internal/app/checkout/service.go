package checkout

import (
	"context"
	"fmt"
	"time"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

// Service runs the submit-order pipeline. The relay is the commit point:
// an order is recorded in history if and only if the controller accepted it,
// so a failed checkout can be retried whole without double-recording.
type Service struct {
	store    interfaces.HistoryStore
	relay    interfaces.DeviceRelay
	notifier interfaces.DispenseNotifier // nil when notifications are disabled
	logger   logger.Logger
}

func NewService(store interfaces.HistoryStore, relay interfaces.DeviceRelay, notifier interfaces.DispenseNotifier, logger logger.Logger) *Service {
	return &Service{
		store:    store,
		relay:    relay,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Service) Checkout(ctx context.Context, items []domain.OrderItem) (*interfaces.CheckoutResult, error) {
	// 1. Validate. Nothing has left the process yet, so failing here has no
	// side effects.
	if err := domain.ValidateItems(items); err != nil {
		s.logger.Error("validation_failed", "Order validation failed", "", nil, err)
		return &interfaces.CheckoutResult{
			Status:  "error",
			Message: err.Error(),
		}, err
	}

	// 2. Relay. One attempt only; the controller dispenses on receipt.
	reply, err := s.relay.Relay(ctx, items)
	if err != nil {
		s.logger.Error("relay_failed", "Failed to relay order to controller", "", map[string]interface{}{
			"line_items": len(items),
		}, err)
		return &interfaces.CheckoutResult{
			Status:  "error",
			Message: fmt.Sprintf("order not dispensed: %v", err),
		}, err
	}

	// 3. Persist. The dispense already happened and cannot be rolled back,
	// so a failure here is reported as its own case and the device reply is
	// still handed back.
	if err := s.store.Append(ctx, items); err != nil {
		wrapped := fmt.Errorf("%w: %v", domain.ErrHistoryNotRecorded, err)
		s.logger.Error("persist_failed", "Dispensed order could not be recorded in history", "", map[string]interface{}{
			"line_items": len(items),
		}, wrapped)
		return &interfaces.CheckoutResult{
			Status:      "error",
			Message:     wrapped.Error(),
			DeviceReply: reply,
		}, wrapped
	}

	s.logger.Debug("order_recorded", "Order appended to history", "", map[string]interface{}{
		"line_items": len(items),
	})

	// 4. Notify. The checkout is committed; publish failures are logged only.
	s.notifyDispensed(ctx, items)

	return &interfaces.CheckoutResult{
		Status:      "ok",
		Message:     "order sent to the drink controller and saved",
		DeviceReply: reply,
	}, nil
}

func (s *Service) notifyDispensed(ctx context.Context, items []domain.OrderItem) {
	if s.notifier == nil {
		return
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}

	msg := interfaces.DispensedMessage{
		Items:         items,
		TotalQuantity: total,
		DispensedAt:   time.Now().UTC(),
	}

	if err := s.notifier.PublishDispensed(ctx, msg); err != nil {
		s.logger.Error("notify_failed", "Failed to publish dispense notification", "", nil, err)
		return
	}

	s.logger.Debug("dispense_published", "Dispense notification published", "", map[string]interface{}{
		"total_quantity": total,
	})
}
