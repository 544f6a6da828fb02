package create_booking

import (
	"fmt"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (types.Date, error) {
	if req.GuestID <= 0 {
		return "", fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return "", fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if err := domain.ActivityType(req.ActivityType).Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Нужен либо явный tier, либо количество гостей
	if req.Tier == nil && req.AttendeeCount == nil {
		return "", fmt.Errorf("%w: either tier or attendeeCount is required", ErrInvalidInput)
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	// Бронирование не может пересекать полночь
	if req.StartHour < domain.MinSlotHour || req.StartHour > domain.MaxSlotHour {
		return "", fmt.Errorf("%w: startHour must be in [0, 23]", ErrInvalidTimeRange)
	}
	if req.EndHour <= req.StartHour || req.EndHour > domain.MaxSlotHour+1 {
		return "", fmt.Errorf("%w: endHour must be in (startHour, 24]", ErrInvalidTimeRange)
	}

	if req.CustomPrice != nil && req.CustomPrice.IsNegative() {
		return "", fmt.Errorf("%w: customPrice must not be negative", ErrInvalidInput)
	}

	if req.WaiveMinimumHours && req.CustomPrice == nil {
		return "", fmt.Errorf("%w: waiveMinimumHours requires customPrice", ErrInvalidInput)
	}

	return date, nil
}

// hasOverlappingBooking проверяет пересечение запрошенных часов с активными бронированиями
func hasOverlappingBooking(bookings []*domain.Booking, startHour, endHour int) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		if booking.StartHour < endHour && booking.EndHour > startHour {
			return true
		}
	}
	return false
}
