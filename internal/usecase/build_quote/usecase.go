package build_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
	availabilityRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/availability"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
)

// UseCase use case расчета стоимости аренды
type UseCase struct {
	venueRepo        VenueRepository
	availabilityRepo AvailabilityRepository
	feeRates         domain.FeeRates
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:        venueRepo,
		availabilityRepo: availabilityRepo,
		feeRates:         domain.DefaultFeeRates(),
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет расчет стоимости
// Договорная цена (CustomPrice) заменяет расчет по rate matrix; разбивка
// комиссий применяется к итоговой базовой стоимости в любом случае.
// Конфликт с заблокированным слотом возвращается как *domain.ConflictError
// с указанием первой конфликтующей даты и часа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildQuote: venue=%d, activity=%s, start=%s, end=%s",
		req.VenueID, req.ActivityType, req.StartTime.Format(domain.DateFormat), req.EndTime.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BuildQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("BuildQuote: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("BuildQuote: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Определяем tier
	tier, err := resolveTier(req)
	if err != nil {
		uc.logger.Warn("BuildQuote: tier resolution failed: %v", err)
		return nil, err
	}

	// 5. Вычисляем длительность в часах
	hours, err := domain.BookingHours(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("BuildQuote: invalid time range: %v", err)
		return nil, ErrInvalidTimeRange
	}

	// 6. Проверяем минимальную длительность
	// Минимум снимается только договорной ценой с явным waiveMinimumHours
	if hours < venue.MinBookingHours && !(req.WaiveMinimumHours && req.CustomPrice != nil) {
		uc.logger.Warn("BuildQuote: duration %dh below venue minimum %dh", hours, venue.MinBookingHours)
		return nil, fmt.Errorf("%w: %d hours requested, minimum is %d", ErrBelowMinimumHours, hours, venue.MinBookingHours)
	}

	// 7. Проверяем конфликты с календарем
	record, err := uc.availabilityRepo.GetByVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrVenueNotFound) {
			uc.logger.Warn("BuildQuote: venue id=%d not found in availability", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("BuildQuote: failed to get availability for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if err := domain.CheckConflict(record, req.StartTime, req.EndTime, now); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			uc.logger.Warn("BuildQuote: conflict for venue=%d at %s %02d:00", req.VenueID, conflict.Date, conflict.Hour)
			return nil, err
		}
		uc.logger.Warn("BuildQuote: conflict check failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// 8. Определяем базовую стоимость
	var subtotal decimal.Decimal
	isCustomPrice := req.CustomPrice != nil
	if isCustomPrice {
		subtotal = *req.CustomPrice
	} else {
		activity := domain.ActivityType(req.ActivityType)
		rate, ok := venue.RateMatrix.GetRate(activity, tier)
		if !ok {
			uc.logger.Warn("BuildQuote: no rate for venue=%d, activity=%s, tier=%s", req.VenueID, activity, tier)
			return nil, ErrRateUnavailable
		}
		subtotal = rate.Mul(decimal.NewFromInt(int64(hours)))
	}

	// 9. Собираем сборы и считаем разбивку
	fees, err := collectFees(venue, req.ExtraFees)
	if err != nil {
		uc.logger.Warn("BuildQuote: invalid fees: %v", err)
		return nil, err
	}

	breakdown := domain.ComputeBreakdown(subtotal, fees, uc.feeRates)

	quote := &domain.Quote{
		ID:            uuid.New(),
		VenueID:       req.VenueID,
		ActivityType:  domain.ActivityType(req.ActivityType),
		GroupSizeTier: tier,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Hours:         hours,
		IsCustomPrice: isCustomPrice,
		Breakdown:     breakdown,
		CreatedAt:     now,
	}

	uc.logger.Info("BuildQuote: quote id=%s for venue=%d, total=%s", quote.ID, req.VenueID, breakdown.TotalToPayer.StringFixed(2))
	return &Response{Quote: quote}, nil
}
