package sync_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/blocmark/BM-PricingService/internal/domain"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
	calendarClient "github.com/blocmark/BM-PricingService/internal/integrations/calendarsync"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// UseCase use case синхронизации внешнего календаря
type UseCase struct {
	venueRepo        VenueRepository
	availabilityRepo AvailabilityRepository
	calendarClient   CalendarServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	availabilityRepo AvailabilityRepository,
	calendarClient CalendarServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:        venueRepo,
		availabilityRepo: availabilityRepo,
		calendarClient:   calendarClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет синхронизацию внешнего календаря площадки
// Слияние аддитивное: занятые интервалы фида добавляются к блокировкам
// источника external, блокировки хоста не затрагиваются. Повторная
// синхронизация того же фида идемпотентна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SyncCalendar: venue=%d, user=%d", req.VenueID, req.UserID)

	// 1. Валидация входных данных
	if req.UserID <= 0 || req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: userID and venueID must be positive", ErrInvalidInput)
	}

	// 2. Получаем площадку и проверяем права
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("SyncCalendar: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SyncCalendar: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsOwner(req.UserID) {
		uc.logger.Warn("SyncCalendar: access denied for user=%d to venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// 3. Синхронизация должна быть включена для площадки
	if !venue.ExternalSyncEnabled {
		uc.logger.Warn("SyncCalendar: external sync disabled for venue=%d", req.VenueID)
		return nil, ErrSyncDisabled
	}

	// 4. Получаем занятые интервалы внешнего календаря
	intervals, err := uc.calendarClient.GetBusyIntervals(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, calendarClient.ErrSyncUnavailable) {
			uc.logger.Warn("SyncCalendar: calendar service unavailable for venue=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: %v", ErrSyncUnavailable, err)
		}
		if errors.Is(err, calendarClient.ErrVenueNotFound) {
			uc.logger.Warn("SyncCalendar: external calendar for venue=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SyncCalendar: failed to fetch busy intervals for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to fetch busy intervals: %v", ErrInternal, err)
	}

	// 5. Разбираем фид на полнодневные и почасовые блокировки
	dates, slots, err := partitionIntervals(intervals)
	if err != nil {
		uc.logger.Warn("SyncCalendar: invalid feed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 6. Добавляем блокировки одной транзакцией
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.availabilityRepo.AddBlockedDates(txCtx, req.VenueID, domain.SourceExternal, dates); err != nil {
			return err
		}
		return uc.availabilityRepo.AddBlockedSlots(txCtx, req.VenueID, domain.SourceExternal, slots)
	})
	if err != nil {
		uc.logger.Error("SyncCalendar: transaction failed for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 7. Возвращаем актуальное состояние календаря
	record, err := uc.availabilityRepo.GetByVenue(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to reload availability for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: reload failed: %v", ErrInternal, err)
	}

	uc.logger.Info("SyncCalendar: merged %d dates and %d slots for venue=%d", len(dates), len(slots), req.VenueID)
	return &Response{
		Record:      record,
		MergedDates: len(dates),
		MergedSlots: len(slots),
	}, nil
}

// partitionIntervals валидирует фид и разделяет его на полнодневные даты
// и почасовые слоты
func partitionIntervals(intervals []calendarClient.BusyInterval) ([]types.Date, []domain.Slot, error) {
	dates := make([]types.Date, 0)
	slots := make([]domain.Slot, 0)

	for _, interval := range intervals {
		date, err := types.ParseDate(interval.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
		}

		fullDay, expanded, err := domain.ExpandBusyInterval(domain.BusyInterval{
			Date:      date,
			StartHour: interval.StartHour,
			EndHour:   interval.EndHour,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
		}

		if fullDay {
			dates = append(dates, date)
			continue
		}
		slots = append(slots, expanded...)
	}

	return dates, slots, nil
}
