package get_rate_matrix

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/service/rates"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	service RateService
	logger  Logger
}

func NewHandler(service RateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/rates
// Публичный эндпоинт, авторизация не требуется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/rates - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем rate matrix площадки
	result, err := h.service.Get(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, rates.ErrVenueNotFound) {
			h.logger.Warn("GET /venues/{id}/rates - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)
			return
		}
		h.logger.Error("GET /venues/{id}/rates - Failed to get rate matrix: venue_id=%d, error=%v",
			venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/rates - Rate matrix retrieved successfully: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
