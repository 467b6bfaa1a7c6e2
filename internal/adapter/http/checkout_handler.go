package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

type orderItemRequest struct {
	DrinkID   string `json:"drinkId"`
	DrinkName string `json:"drinkName"`
	Quantity  int    `json:"quantity"`
	Calories  int    `json:"calories"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond(w, http.StatusMethodNotAllowed, &interfaces.CheckoutResult{
			Status:  "error",
			Message: "method not allowed",
		})
		return
	}

	var req []orderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, &interfaces.CheckoutResult{
			Status:  "error",
			Message: "invalid request body",
		})
		return
	}

	items := make([]domain.OrderItem, len(req))
	for i, item := range req {
		items[i] = domain.OrderItem{
			DrinkID:   item.DrinkID,
			DrinkName: item.DrinkName,
			Quantity:  item.Quantity,
			Calories:  item.Calories,
		}
	}

	result, err := h.service.Checkout(r.Context(), items)
	if err != nil {
		h.logger.Error("checkout_failed", "Checkout failed", "", map[string]interface{}{
			"line_items": len(items),
		}, err)
		respond(w, statusFor(err), result)
		return
	}

	respond(w, http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDeviceUnreachable), errors.Is(err, domain.ErrDeviceRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
