package build_quote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blocmark/BM-PricingService/internal/api/handlers"
	"github.com/blocmark/BM-PricingService/internal/domain"
	buildQuote "github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC 3339"
	msgVenueNotFound      = "площадка не найдена"
	msgRateUnavailable    = "ставка для выбранной активности и размера группы недоступна"
	msgBelowMinimumHours  = "длительность меньше минимальной для площадки"
	msgInvalidAttendees   = "некорректное количество гостей"
	msgInvalidTimeRange   = "некорректный временной интервал"
	msgSlotConflict       = "запрошенный интервал пересекается с заблокированным временем: %s %02d:00"
)

type Handler struct {
	useCase BuildQuoteUseCase
	logger  Logger
}

func NewHandler(useCase BuildQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BuildQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт календаря сообщает первую конфликтующую дату и час
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			h.logger.Warn("POST /quotes - Conflict: venue_id=%d, date=%s, hour=%d", req.VenueID, conflict.Date, conflict.Hour)
			handlers.RespondError(w, http.StatusConflict, fmt.Sprintf(msgSlotConflict, conflict.Date, conflict.Hour))
			return
		}

		switch {
		case errors.Is(err, buildQuote.ErrVenueNotFound):
			h.logger.Warn("POST /quotes - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, buildQuote.ErrRateUnavailable):
			h.logger.Warn("POST /quotes - Rate unavailable: venue_id=%d, activity=%s", req.VenueID, req.ActivityType)
			handlers.RespondError(w, http.StatusConflict, msgRateUnavailable)

		case errors.Is(err, buildQuote.ErrBelowMinimumHours):
			h.logger.Warn("POST /quotes - Below minimum hours: venue_id=%d", req.VenueID)
			handlers.RespondUnprocessableEntity(w, msgBelowMinimumHours)

		case errors.Is(err, buildQuote.ErrInvalidAttendeeCount):
			h.logger.Warn("POST /quotes - Invalid attendee count: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidAttendees)

		case errors.Is(err, buildQuote.ErrInvalidTimeRange):
			h.logger.Warn("POST /quotes - Invalid time range: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, buildQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /quotes - Failed to build quote: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromDomainQuote(result.Quote)

	h.logger.Info("POST /quotes - Quote built successfully: quote_id=%s, venue_id=%d", response.ID, req.VenueID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
