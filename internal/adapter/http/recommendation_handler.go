package http

import (
	"net/http"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/interfaces"
)

type RecommendationHandler struct {
	service interfaces.RecommendationService
	limit   int
	logger  logger.Logger
}

func NewRecommendationHandler(service interfaces.RecommendationService, limit int, logger logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		limit:   limit,
		logger:  logger,
	}
}

type recommendationsResponse struct {
	Status  string   `json:"status"`
	Drinks  []string `json:"drinks"`
	Message string   `json:"message,omitempty"`
}

func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond(w, http.StatusMethodNotAllowed, recommendationsResponse{
			Status:  "error",
			Drinks:  []string{},
			Message: "method not allowed",
		})
		return
	}

	drinks, err := h.service.TopDrinks(r.Context(), h.limit)
	if err != nil {
		h.logger.Error("recommendations_failed", "Failed to compute recommendations", "", nil, err)
		respond(w, http.StatusInternalServerError, recommendationsResponse{
			Status:  "error",
			Drinks:  []string{},
			Message: "could not load order history",
		})
		return
	}

	resp := recommendationsResponse{
		Status: "ok",
		Drinks: drinks,
	}
	if len(drinks) == 0 {
		resp.Drinks = []string{}
		resp.Message = "no order history yet"
	}

	respond(w, http.StatusOK, resp)
}
