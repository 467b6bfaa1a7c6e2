package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/interfaces"
)

type DispenseHandler struct {
	logger logger.Logger
}

func NewDispenseHandler(logger logger.Logger) *DispenseHandler {
	return &DispenseHandler{logger: logger}
}

func (h *DispenseHandler) HandleDispense(ctx context.Context, body []byte) error {
	var msg interfaces.DispensedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse dispense notification", "", nil, err)
		return err
	}

	h.logger.Info("dispense_received", fmt.Sprintf("Order dispensed: %d drinks", msg.TotalQuantity), "",
		map[string]interface{}{
			"total_quantity": msg.TotalQuantity,
			"line_items":     len(msg.Items),
			"dispensed_at":   msg.DispensedAt,
		})

	for _, item := range msg.Items {
		fmt.Printf("Dispensed %d x %s (%d calories each)\n", item.Quantity, item.DrinkName, item.Calories)
	}

	return nil
}
