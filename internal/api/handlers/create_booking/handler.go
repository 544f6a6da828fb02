package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/api/middleware"
	"github.com/blocmark/BM-PricingService/internal/domain"
	createBooking "github.com/blocmark/BM-PricingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgSlotNotAvailable   = "выбранные часы уже заняты"
	msgSlotConflict       = "запрошенный интервал пересекается с заблокированным временем: %s %02d:00"
	msgRateUnavailable    = "ставка для выбранной активности и размера группы недоступна"
	msgBelowMinimumHours  = "длительность меньше минимальной для площадки"
	msgInvalidAttendees   = "некорректное количество гостей"
	msgInvalidTimeRange   = "некорректный временной интервал"
	msgPaymentFailed      = "не удалось создать платежную сессию, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(guestID))
	if err != nil {
		// Конфликт календаря сообщает первую конфликтующую дату и час
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.logger.Warn("POST /bookings - Conflict: venue_id=%d, date=%s, hour=%d", req.VenueID, conflict.Date, conflict.Hour)
			handlers.RespondError(w, http.StatusConflict, fmt.Sprintf(msgSlotConflict, conflict.Date, conflict.Hour))
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: guest_id=%d, venue_id=%d", guestID, req.VenueID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrRateUnavailable):
			h.logger.Warn("POST /bookings - Rate unavailable: venue_id=%d, activity=%s", req.VenueID, req.ActivityType)
			handlers.RespondError(w, http.StatusConflict, msgRateUnavailable)

		case errors.Is(err, createBooking.ErrBelowMinimumHours):
			h.logger.Warn("POST /bookings - Below minimum hours: guest_id=%d, venue_id=%d", guestID, req.VenueID)
			handlers.RespondUnprocessableEntity(w, msgBelowMinimumHours)

		case errors.Is(err, createBooking.ErrInvalidAttendeeCount):
			h.logger.Warn("POST /bookings - Invalid attendee count: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidAttendees)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrPaymentFailed):
			h.logger.Error("POST /bookings - Payment failed: guest_id=%d, venue_id=%d, error=%v", guestID, req.VenueID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: guest_id=%d, venue_id=%d, error=%v",
				guestID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, guest_id=%d, venue_id=%d",
		response.ID, guestID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
