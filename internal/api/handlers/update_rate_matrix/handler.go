package update_rate_matrix

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	"github.com/blocmark/BM-PricingService/internal/service/rates"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidBody        = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgVenueNotFound      = "площадка не найдена"
	msgNegativeRate       = "почасовая ставка не может быть отрицательной"
	msgSmallTierMandatory = "tier small нельзя отключить"
	msgActivityNeedsRate  = "для включения активности требуется положительная ставка tier small"
	msgInvalidFee         = "некорректный дополнительный сбор"
	msgInvalidMinHours    = "некорректная минимальная длительность бронирования"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle PUT /api/v1/venues/{venueId}/rates
// При любой ошибке валидации конфигурация площадки остается без изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/rates - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /venues/{id}/rates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req UpdateRateMatrixRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Обновляем rate matrix (сервис сам проверит права владельца)
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, venueID))
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrVenueNotFound):
			h.logger.Warn("PUT /venues/{id}/rates - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, rates.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{id}/rates - Access denied: venue_id=%d, user_id=%d",
				venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rates.ErrNegativeRate):
			h.logger.Warn("PUT /venues/{id}/rates - Negative rate: venue_id=%d", venueID)
			handlers.RespondUnprocessableEntity(w, msgNegativeRate)

		case errors.Is(err, rates.ErrSmallTierMandatory):
			h.logger.Warn("PUT /venues/{id}/rates - Attempt to disable small tier: venue_id=%d", venueID)
			handlers.RespondUnprocessableEntity(w, msgSmallTierMandatory)

		case errors.Is(err, rates.ErrActivityNeedsSmallRate):
			h.logger.Warn("PUT /venues/{id}/rates - Activity without small rate: venue_id=%d", venueID)
			handlers.RespondUnprocessableEntity(w, msgActivityNeedsRate)

		case errors.Is(err, rates.ErrInvalidFee):
			h.logger.Warn("PUT /venues/{id}/rates - Invalid fee: venue_id=%d, error=%v", venueID, err)
			handlers.RespondUnprocessableEntity(w, msgInvalidFee)

		case errors.Is(err, rates.ErrInvalidMinHours):
			h.logger.Warn("PUT /venues/{id}/rates - Invalid min booking hours: venue_id=%d", venueID)
			handlers.RespondUnprocessableEntity(w, msgInvalidMinHours)

		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/rates - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /venues/{id}/rates - Failed to update rate matrix: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/rates - Rate matrix updated successfully: venue_id=%d, user_id=%d",
		venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
