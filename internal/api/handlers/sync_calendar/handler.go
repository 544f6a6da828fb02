package sync_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	syncCalendar "github.com/blocmark/BM-PricingService/internal/usecase/sync_calendar"
)

const (
	msgInvalidVenueID  = "некорректный ID площадки"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgVenueNotFound   = "площадка не найдена"
	msgSyncDisabled    = "внешняя синхронизация отключена для площадки"
	msgSyncUnavailable = "сервис внешних календарей временно недоступен"
	msgInvalidFeed     = "внешний календарь вернул некорректные данные"
)

type Handler struct {
	useCase SyncCalendarUseCase
	logger  Logger
}

func NewHandler(useCase SyncCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/availability/sync
// Запускает разовую синхронизацию с внешним календарем площадки.
// Слияние только добавляет блокировки, ранее слитые интервалы не снимаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/availability/sync - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues/{id}/availability/sync - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Запускаем синхронизацию
	result, err := h.useCase.Execute(r.Context(), &syncCalendar.Request{
		UserID:  userID,
		VenueID: venueID,
	})
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/availability/sync - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, syncCalendar.ErrAccessDenied):
			h.logger.Warn("POST /venues/{id}/availability/sync - Access denied: venue_id=%d, user_id=%d",
				venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, syncCalendar.ErrSyncDisabled):
			h.logger.Warn("POST /venues/{id}/availability/sync - Sync disabled: venue_id=%d", venueID)
			handlers.RespondError(w, http.StatusConflict, msgSyncDisabled)

		case errors.Is(err, syncCalendar.ErrSyncUnavailable):
			h.logger.Error("POST /venues/{id}/availability/sync - Calendar service unavailable: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSyncUnavailable)

		case errors.Is(err, syncCalendar.ErrInvalidFeed):
			h.logger.Error("POST /venues/{id}/availability/sync - Invalid feed: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgInvalidFeed)

		default:
			h.logger.Error("POST /venues/{id}/availability/sync - Sync failed: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/availability/sync - Sync completed: venue_id=%d, merged_dates=%d, merged_slots=%d",
		venueID, result.MergedDates, result.MergedSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
