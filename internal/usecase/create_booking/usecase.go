package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blocmark/BM-PricingService/internal/domain"
	bookingRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/booking"
	"github.com/blocmark/BM-PricingService/internal/integrations/paymentservice"
	"github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
)

// UseCase use case создания бронирования
type UseCase struct {
	quoteBuilder     QuoteBuilder
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	venueRepo        VenueRepository
	paymentClient    PaymentServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	quoteBuilder QuoteBuilder,
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	venueRepo VenueRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		quoteBuilder:     quoteBuilder,
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		venueRepo:        venueRepo,
		paymentClient:    paymentClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Цена фиксируется расчетом котировки, затем слоты занимаются в сериализуемой
// транзакции. После коммита создается платежная сессия; если это не удалось,
// бронирование переводится в payment_failed и слоты освобождаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%d, venue=%d, date=%s, hours=[%d, %d)",
		req.GuestID, req.VenueID, req.Date, req.StartHour, req.EndHour)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Строим временной интервал бронирования
	dayStart, err := date.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}
	startTime := dayStart.Add(time.Duration(req.StartHour) * time.Hour)
	endTime := dayStart.Add(time.Duration(req.EndHour) * time.Hour)

	// 4. Считаем котировку: она же проверяет ставку, минимум часов и конфликты
	quoteResp, err := uc.quoteBuilder.Execute(ctx, &build_quote.Request{
		VenueID:           req.VenueID,
		ActivityType:      req.ActivityType,
		Tier:              req.Tier,
		AttendeeCount:     req.AttendeeCount,
		StartTime:         startTime,
		EndTime:           endTime,
		ExtraFees:         req.ExtraFees,
		CustomPrice:       req.CustomPrice,
		WaiveMinimumHours: req.WaiveMinimumHours,
	})
	if err != nil {
		return nil, uc.mapQuoteError(err)
	}
	quote := quoteResp.Quote

	// 5. Получаем площадку для валюты платежа
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 6. Занимаем слоты в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перечитываем календарь внутри транзакции
		record, err := uc.availabilityRepo.GetByVenue(txCtx, req.VenueID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		if err := domain.CheckConflict(record, startTime, endTime, now); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				uc.logger.Warn("CreateBooking: conflict at %s %02d:00", conflict.Date, conflict.Hour)
				return err
			}
			return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}

		// 6.2. Читаем активные бронирования на дату с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:   req.VenueID,
			StartDate: &date,
			EndDate:   &date,
		}
		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.3. Проверяем пересечение с существующими бронированиями
		if hasOverlappingBooking(bookings, req.StartHour, req.EndHour) {
			uc.logger.Warn("CreateBooking: hours [%d, %d) already taken for venue=%d on %s",
				req.StartHour, req.EndHour, req.VenueID, date)
			return ErrSlotNotAvailable
		}

		// 6.4. Создаем бронирование с зафиксированной раскладкой цены
		booking := &domain.Booking{
			ID:                  uuid.New(),
			VenueID:             req.VenueID,
			GuestID:             req.GuestID,
			ActivityType:        quote.ActivityType,
			GroupSizeTier:       quote.GroupSizeTier,
			BookingDate:         date,
			StartHour:           req.StartHour,
			EndHour:             req.EndHour,
			Hours:               quote.Hours,
			IsCustomPrice:       quote.IsCustomPrice,
			BaseSubtotal:        quote.Breakdown.BaseSubtotal,
			AdditionalFeesTotal: quote.Breakdown.AdditionalFeesTotal,
			PlatformFee:         quote.Breakdown.PlatformFee,
			ProcessingFee:       quote.Breakdown.ProcessingFee,
			NetToHost:           quote.Breakdown.NetToHost,
			TotalToPayer:        quote.Breakdown.TotalToPayer,
			Status:              domain.StatusPendingPayment,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot taken by concurrent booking for venue=%d on %s", req.VenueID, date)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Создаем платежную сессию уже вне транзакции
	session, err := uc.paymentClient.CreateCheckoutSession(ctx, paymentservice.CheckoutSessionRequest{
		BookingID: result.ID.String(),
		GuestID:   req.GuestID,
		Amount:    result.TotalToPayer.StringFixed(2),
		Currency:  venue.Currency,
	})
	if err != nil {
		// Компенсация: переводим бронирование в payment_failed и освобождаем слоты
		uc.logger.Error("CreateBooking: checkout session failed for booking id=%s: %v", result.ID, err)
		if cancelErr := uc.bookingRepo.Cancel(ctx, result.ID, domain.StatusPaymentFailed, "checkout session creation failed"); cancelErr != nil {
			uc.logger.Error("CreateBooking: compensation failed for booking id=%s: %v", result.ID, cancelErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := uc.bookingRepo.UpdateCheckoutRef(ctx, result.ID, session.SessionID); err != nil {
		uc.logger.Error("CreateBooking: failed to save checkout ref for booking id=%s: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%s",
		result.ID, result.TotalToPayer.StringFixed(2))

	return &Response{
		Booking:     result,
		RedirectURL: session.RedirectURL,
	}, nil
}

// mapQuoteError конвертирует ошибки расчета котировки в ошибки usecase
// Конфликт календаря (*domain.ConflictError) пробрасывается как есть
func (uc *UseCase) mapQuoteError(err error) error {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return err
	}

	switch {
	case errors.Is(err, build_quote.ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, build_quote.ErrRateUnavailable):
		return ErrRateUnavailable
	case errors.Is(err, build_quote.ErrBelowMinimumHours):
		return fmt.Errorf("%w: %v", ErrBelowMinimumHours, err)
	case errors.Is(err, build_quote.ErrInvalidAttendeeCount):
		return ErrInvalidAttendeeCount
	case errors.Is(err, build_quote.ErrInvalidTimeRange):
		return ErrInvalidTimeRange
	case errors.Is(err, build_quote.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: quote failed: %v", ErrInternal, err)
	}
}
