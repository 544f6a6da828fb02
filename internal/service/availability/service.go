package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/blocmark/BM-PricingService/internal/domain"
	availabilityRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/availability"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
	"github.com/blocmark/BM-PricingService/internal/service/availability/models"
)

// Service сервис для работы с календарем доступности площадок
type Service struct {
	availabilityRepo AvailabilityRepository
	venueRepo        VenueRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		venueRepo:        venueRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get получает снимок календаря площадки
// Публичная операция, прав доступа не требует
func (s *Service) Get(ctx context.Context, venueID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for venue=%d", venueID)

	record, err := s.availabilityRepo.GetByVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrVenueNotFound) {
			s.logger.Warn("Get: venue=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Get: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched availability for venue=%d", venueID)
	return models.FromDomainRecord(record), nil
}

// Update изменяет календарь площадки от имени хоста
// Доступно только владельцу. Блокировки и снятия идемпотентны; снятие
// затрагивает только блокировки хоста, блокировки внешнего календаря
// остаются нетронутыми
func (s *Service) Update(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability for venue=%d by user=%d, mode=%s, action=%s",
		req.VenueID, req.UserID, req.Mode, req.Action)

	if err := req.Validate(); err != nil {
		s.logger.Warn("Update: invalid request for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Update: venue=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !venue.IsOwner(req.UserID) {
		s.logger.Warn("Update: access denied for user=%d to venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		switch req.Mode {
		case models.ModeFullDay:
			dates, err := models.ToDomainDates(req.Dates)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if req.Action == models.ActionBlock {
				return s.availabilityRepo.AddBlockedDates(ctx, req.VenueID, domain.SourceHost, dates)
			}
			return s.availabilityRepo.RemoveBlockedDates(ctx, req.VenueID, dates)
		default:
			slots, err := models.ToDomainSlots(req.Slots)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if req.Action == models.ActionBlock {
				return s.availabilityRepo.AddBlockedSlots(ctx, req.VenueID, domain.SourceHost, slots)
			}
			return s.availabilityRepo.RemoveBlockedSlots(ctx, req.VenueID, slots)
		}
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: invalid dates or slots for venue=%d: %v", req.VenueID, err)
			return nil, err
		}
		s.logger.Error("Update: transaction failed for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}

	// Возвращаем актуальное состояние календаря
	record, err := s.availabilityRepo.GetByVenue(ctx, req.VenueID)
	if err != nil {
		s.logger.Error("Update: failed to reload availability for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Update - reload failed: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated availability for venue=%d", req.VenueID)
	return models.FromDomainRecord(record), nil
}
