package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Quote неизменяемая полная раскладка цены одного кандидата на бронирование
// Считается по требованию и никогда не сохраняется этим сервисом: при любом
// изменении входных данных строится новая котировка
type Quote struct {
	ID            uuid.UUID
	VenueID       int64
	ActivityType  ActivityType
	GroupSizeTier GroupSizeTier
	StartTime     time.Time
	EndTime       time.Time
	Hours         int
	IsCustomPrice bool
	Breakdown     Breakdown
	CreatedAt     time.Time
}

// BookingHours возвращает оплачиваемое количество часов интервала:
// округление вверх, минимум 1 час
func BookingHours(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// ValidateMinBookingHours проверяет минимальную длительность бронирования площадки
func ValidateMinBookingHours(hours int) error {
	if hours < MinBookingHoursLimit || hours > MaxBookingHoursLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidMinHours, hours)
	}
	return nil
}
