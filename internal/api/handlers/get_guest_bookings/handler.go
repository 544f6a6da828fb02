package get_guest_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	"github.com/blocmark/BM-PricingService/internal/service/bookings"
)

const (
	msgInvalidGuestID = "некорректный ID пользователя"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgInvalidStatus  = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guests/{guestId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем guestId из URL
	vars := mux.Vars(r)
	guestIDStr := vars["guestId"]

	guestID, err := strconv.ParseInt(guestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{guestId}/bookings - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{guestId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю бронирований видит только сам гость
	if userID != guestID {
		h.logger.Warn("GET /guests/{guestId}/bookings - Access denied: guest_id=%d, user_id=%d", guestID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Получаем бронирования гостя
	result, err := h.service.GetGuestBookings(r.Context(), guestID, statusPtr)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /guests/{guestId}/bookings - Invalid status: guest_id=%d, status=%s", guestID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /guests/{guestId}/bookings - Failed to get bookings: guest_id=%d, error=%v",
			guestID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /guests/{guestId}/bookings - Bookings retrieved successfully: guest_id=%d, count=%d",
		guestID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
