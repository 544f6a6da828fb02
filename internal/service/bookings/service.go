package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/blocmark/BM-PricingService/internal/domain"
	bookingRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/booking"
	venueRepo "github.com/blocmark/BM-PricingService/internal/infra/storage/venue"
	"github.com/blocmark/BM-PricingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование
// или бронирования своей площадки
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetGuestBookings получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestBookings(ctx context.Context, guestID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetGuestBookings: fetching bookings for guest=%d, status=%v", guestID, status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if status != nil {
		converted, err := models.ToDomainBookingStatus(*status)
		if err != nil {
			s.logger.Warn("GetGuestBookings: invalid status=%s for guest=%d", *status, guestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	bookings, err := s.bookingRepo.GetByGuestID(ctx, guestID, domainStatus)
	if err != nil {
		s.logger.Error("GetGuestBookings: repository error for guest=%d: %v", guestID, err)
		return nil, fmt.Errorf("%w: GetGuestBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestBookings: successfully fetched %d bookings for guest=%d", len(bookings), guestID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только владельцу площадки
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Гость может отменить только своё бронирование (cancelled_by_guest)
// Владелец площадки может отменить любое бронирование площадки (cancelled_by_host)
// Отмена освобождает занятые слоты
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	// Проверяем, является ли пользователь гостем бронирования
	if booking.GuestID == req.UserID {
		cancelStatus = domain.StatusCancelledByGuest
	} else {
		// Проверяем, является ли пользователь владельцем площадки
		if err := s.checkOwnerAccess(ctx, booking.VenueID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%s", req.UserID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByHost
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s with status=%s", bookingID, cancelStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит своё бронирование или бронирования своей площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь гость бронирования - доступ разрешён
	if booking.GuestID == userID {
		return nil
	}

	// Проверяем, является ли пользователь владельцем площадки
	if err := s.checkOwnerAccess(ctx, booking.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем площадки
func (s *Service) checkOwnerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkOwnerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}
