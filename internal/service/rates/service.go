package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
	"github.com/blocmark/BM-PricingService/internal/service/rates/models"
)

// Service сервис для работы с rate matrix площадок
type Service struct {
	venueRepo VenueRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса ставок
func NewService(
	venueRepo VenueRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		venueRepo: venueRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get получает rate matrix площадки
// Публичная операция, прав доступа не требует
func (s *Service) Get(ctx context.Context, venueID int64) (*models.RateMatrixResponse, error) {
	s.logger.Info("Get: fetching rate matrix for venue=%d", venueID)

	venue, err := s.getVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Get: successfully fetched rate matrix for venue=%d", venueID)
	return models.FromDomainVenue(venue), nil
}

// Update обновляет rate matrix площадки
// Доступно только владельцу. Изменения применяются к матрице в памяти для
// валидации инвариантов (small tier обязателен, активность требует ставки
// small), затем сохраняются одной транзакцией
func (s *Service) Update(ctx context.Context, req *models.UpdateRateMatrixRequest) (*models.RateMatrixResponse, error) {
	s.logger.Info("Update: updating rate matrix for venue=%d by user=%d", req.VenueID, req.UserID)

	venue, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if !venue.IsOwner(req.UserID) {
		s.logger.Warn("Update: access denied for user=%d to venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// Валидируем изменения на копии матрицы до записи в БД
	fees, err := s.applyToMatrix(venue, req)
	if err != nil {
		s.logger.Warn("Update: invalid rate matrix change for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// Сохраняем все изменения одной транзакцией
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, input := range req.Rates {
			rate := decimal.NewFromFloat(input.HourlyRate)
			if err := s.venueRepo.UpsertRate(ctx, req.VenueID, domain.ActivityType(input.ActivityType), domain.GroupSizeTier(input.Tier), rate); err != nil {
				return err
			}
		}
		for _, toggle := range req.TierToggles {
			if err := s.venueRepo.SetTierEnabled(ctx, req.VenueID, domain.GroupSizeTier(toggle.Tier), toggle.Enabled); err != nil {
				return err
			}
		}
		for _, toggle := range req.ActivityToggles {
			if err := s.venueRepo.SetActivityEnabled(ctx, req.VenueID, domain.ActivityType(toggle.ActivityType), toggle.Enabled); err != nil {
				return err
			}
		}
		if req.Fees != nil {
			if err := s.venueRepo.ReplaceFees(ctx, req.VenueID, fees); err != nil {
				return err
			}
		}
		if req.MinBookingHours != nil {
			if err := s.venueRepo.UpdateMinBookingHours(ctx, req.VenueID, *req.MinBookingHours); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: transaction failed for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}

	// Возвращаем актуальное состояние
	updated, err := s.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated rate matrix for venue=%d", req.VenueID)
	return models.FromDomainVenue(updated), nil
}

// applyToMatrix применяет изменения к матрице в памяти и валидирует их
// Порядок применения: ставки, tiers, активности, сборы, минимум часов
func (s *Service) applyToMatrix(venue *domain.Venue, req *models.UpdateRateMatrixRequest) ([]domain.AdditionalFee, error) {
	matrix := venue.RateMatrix
	if matrix == nil {
		matrix = domain.NewRateMatrix()
		venue.RateMatrix = matrix
	}

	for _, input := range req.Rates {
		activity := domain.ActivityType(input.ActivityType)
		tier := domain.GroupSizeTier(input.Tier)
		if err := matrix.SetRate(activity, tier, decimal.NewFromFloat(input.HourlyRate)); err != nil {
			return nil, mapDomainError(err)
		}
	}

	for _, toggle := range req.TierToggles {
		if err := matrix.SetTierEnabled(domain.GroupSizeTier(toggle.Tier), toggle.Enabled); err != nil {
			return nil, mapDomainError(err)
		}
	}

	for _, toggle := range req.ActivityToggles {
		if err := matrix.SetActivityEnabled(domain.ActivityType(toggle.ActivityType), toggle.Enabled); err != nil {
			return nil, mapDomainError(err)
		}
	}

	var fees []domain.AdditionalFee
	if req.Fees != nil {
		converted, err := models.ToDomainFees(*req.Fees)
		if err != nil {
			return nil, mapDomainError(err)
		}
		fees = converted
	}

	if req.MinBookingHours != nil {
		if err := domain.ValidateMinBookingHours(*req.MinBookingHours); err != nil {
			return nil, mapDomainError(err)
		}
	}

	return fees, nil
}

// getVenue загружает площадку с маппингом ошибок репозитория
func (s *Service) getVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("getVenue: venue=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("getVenue: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: getVenue - repository error: %v", ErrInternal, err)
	}
	return venue, nil
}

// mapDomainError конвертирует доменные ошибки валидации в ошибки сервиса
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNegativeRate):
		return ErrNegativeRate
	case errors.Is(err, domain.ErrSmallTierMandatory):
		return ErrSmallTierMandatory
	case errors.Is(err, domain.ErrActivityNeedsSmallRate):
		return ErrActivityNeedsSmallRate
	case errors.Is(err, domain.ErrInvalidFee):
		return fmt.Errorf("%w: %v", ErrInvalidFee, err)
	case errors.Is(err, domain.ErrInvalidMinHours):
		return ErrInvalidMinHours
	case errors.Is(err, domain.ErrUnknownTier), errors.Is(err, domain.ErrInvalidActivityType):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
