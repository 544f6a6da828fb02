package domain

import (
	"fmt"
	"time"

	"github.com/blocmark/BM-PricingService/pkg/types"
)

// CheckConflict проверяет запрошенный интервал [start, end) на конфликт
// с заблокированными слотами площадки
//
// Обходит каждую пару (дата, час), покрываемую интервалом, и возвращает
// *ConflictError с первым заблокированным слотом. Это оптимистичная
// предварительная проверка: гарантию "не более одного бронирования на слот"
// дает уникальный индекс booking_slots на уровне хранилища
func CheckConflict(rec *AvailabilityRecord, start, end time.Time, now time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	for t := start.Truncate(time.Hour); t.Before(end); t = t.Add(time.Hour) {
		date := types.NewDate(t)
		hour := t.Hour()
		if rec.IsSlotBlocked(date, hour, now) {
			return &ConflictError{Date: date, Hour: hour}
		}
	}
	return nil
}

// IntervalSlots возвращает все часовые слоты, покрываемые интервалом [start, end)
func IntervalSlots(start, end time.Time) ([]Slot, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	slots := make([]Slot, 0)
	for t := start.Truncate(time.Hour); t.Before(end); t = t.Add(time.Hour) {
		slots = append(slots, Slot{Date: types.NewDate(t), Hour: t.Hour()})
	}
	return slots, nil
}
