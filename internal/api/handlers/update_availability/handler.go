package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	"github.com/blocmark/BM-PricingService/internal/service/availability"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidBody    = "некорректное тело запроса"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgVenueNotFound  = "площадка не найдена"
	msgInvalidInput   = "некорректные даты или слоты"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /venues/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Обновляем календарь (сервис сам проверит права владельца)
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, venueID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrVenueNotFound):
			h.logger.Warn("PUT /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{id}/availability - Access denied: venue_id=%d, user_id=%d",
				venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/availability - Invalid input: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /venues/{id}/availability - Failed to update availability: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/availability - Availability updated successfully: venue_id=%d, user_id=%d",
		venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
