package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/blocmark/BM-PricingService/pkg/types"
)

// BlockSource источник блокировки слота
type BlockSource string

const (
	SourceHost     BlockSource = "host"     // блокировка, добавленная владельцем
	SourceExternal BlockSource = "external" // блокировка из синхронизации внешнего календаря
)

// Slot часовой слот конкретной даты
type Slot struct {
	Date types.Date
	Hour int
}

// Validate проверяет корректность слота
func (s Slot) Validate() error {
	if err := s.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if s.Hour < MinSlotHour || s.Hour > MaxSlotHour {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidSlot, s.Hour)
	}
	return nil
}

// BusyInterval занятый интервал из внешнего календаря
// Отсутствие StartHour/EndHour означает событие на весь день
type BusyInterval struct {
	Date      types.Date
	StartHour *int
	EndHour   *int
}

// ExpandBusyInterval раскрывает busy-интервал в блокировки:
// событие без часового диапазона блокирует весь день, событие с диапазоном
// блокирует часовые слоты [StartHour, EndHour)
func ExpandBusyInterval(iv BusyInterval) (fullDay bool, slots []Slot, err error) {
	if err := iv.Date.Validate(); err != nil {
		return false, nil, fmt.Errorf("%w: %v", ErrInvalidBusyInterval, err)
	}

	if iv.StartHour == nil || iv.EndHour == nil {
		return true, nil, nil
	}

	start, end := *iv.StartHour, *iv.EndHour
	if start < MinSlotHour || start > MaxSlotHour || end <= start || end > MaxSlotHour+1 {
		return false, nil, fmt.Errorf("%w: hours [%d, %d)", ErrInvalidBusyInterval, start, end)
	}

	slots = make([]Slot, 0, end-start)
	for hour := start; hour < end; hour++ {
		slots = append(slots, Slot{Date: iv.Date, Hour: hour})
	}
	return false, slots, nil
}

// AvailabilityRecord состояние доступности площадки
//
// Блокировки владельца и внешнего календаря хранятся раздельно: синхронизация
// только добавляет записи и никогда не удаляет введенное владельцем, а
// отмена блокировки владельцем не трогает внешние записи.
//
// Полнодневные и часовые блокировки на уровне UI взаимоисключающие режимы,
// но запись поддерживает оба одновременно: блокировка всего дня поглощает
// часовые слоты этой даты независимо от того, каким режимом она добавлена
type AvailabilityRecord struct {
	VenueID int64

	HostBlockedDates     map[types.Date]struct{}
	ExternalBlockedDates map[types.Date]struct{}
	HostBlockedSlots     map[Slot]struct{}
	ExternalBlockedSlots map[Slot]struct{}

	ExternalSyncEnabled bool
}

// NewAvailabilityRecord создает пустую запись доступности площадки
func NewAvailabilityRecord(venueID int64) *AvailabilityRecord {
	return &AvailabilityRecord{
		VenueID:              venueID,
		HostBlockedDates:     make(map[types.Date]struct{}),
		ExternalBlockedDates: make(map[types.Date]struct{}),
		HostBlockedSlots:     make(map[Slot]struct{}),
		ExternalBlockedSlots: make(map[Slot]struct{}),
	}
}

// IsDateBlocked проверяет, заблокирована ли дата целиком (любым источником)
func (r *AvailabilityRecord) IsDateBlocked(date types.Date) bool {
	if _, ok := r.HostBlockedDates[date]; ok {
		return true
	}
	_, ok := r.ExternalBlockedDates[date]
	return ok
}

// IsBlocked проверяет, недоступна ли дата для новых бронирований
// Прошедшие даты недоступны всегда, хотя информационно записи о них сохраняются
func (r *AvailabilityRecord) IsBlocked(date types.Date, now time.Time) bool {
	if date.InPast(now) {
		return true
	}
	return r.IsDateBlocked(date)
}

// IsSlotBlocked проверяет, недоступен ли часовой слот для новых бронирований
// Блокировка всего дня поглощает часовые блокировки этой даты
func (r *AvailabilityRecord) IsSlotBlocked(date types.Date, hour int, now time.Time) bool {
	if r.IsBlocked(date, now) {
		return true
	}

	slot := Slot{Date: date, Hour: hour}
	if _, ok := r.HostBlockedSlots[slot]; ok {
		return true
	}
	_, ok := r.ExternalBlockedSlots[slot]
	return ok
}

// Block блокирует даты целиком от имени владельца; идемпотентна
func (r *AvailabilityRecord) Block(dates ...types.Date) {
	for _, date := range dates {
		r.HostBlockedDates[date] = struct{}{}
	}
}

// Unblock снимает полнодневные блокировки владельца; снятие незаблокированной
// даты — no-op. Блокировки внешнего календаря не затрагиваются
func (r *AvailabilityRecord) Unblock(dates ...types.Date) {
	for _, date := range dates {
		delete(r.HostBlockedDates, date)
	}
}

// BlockSlots блокирует часовые слоты от имени владельца; идемпотентна
func (r *AvailabilityRecord) BlockSlots(slots ...Slot) {
	for _, slot := range slots {
		r.HostBlockedSlots[slot] = struct{}{}
	}
}

// UnblockSlots снимает часовые блокировки владельца; снятие никогда не
// блокировавшегося слота — no-op
func (r *AvailabilityRecord) UnblockSlots(slots ...Slot) {
	for _, slot := range slots {
		delete(r.HostBlockedSlots, slot)
	}
}

// MergeBusyIntervals добавляет блокировки из фида внешнего календаря
// Слияние аддитивно (set-union): повторное применение того же фида не меняет
// состояние, записи владельца никогда не удаляются
func (r *AvailabilityRecord) MergeBusyIntervals(intervals []BusyInterval) error {
	for _, iv := range intervals {
		fullDay, slots, err := ExpandBusyInterval(iv)
		if err != nil {
			return err
		}
		if fullDay {
			r.ExternalBlockedDates[iv.Date] = struct{}{}
			continue
		}
		for _, slot := range slots {
			r.ExternalBlockedSlots[slot] = struct{}{}
		}
	}
	return nil
}

// BlockedDateList возвращает отсортированное объединение заблокированных дат
func (r *AvailabilityRecord) BlockedDateList() []types.Date {
	seen := make(map[types.Date]struct{}, len(r.HostBlockedDates)+len(r.ExternalBlockedDates))
	for date := range r.HostBlockedDates {
		seen[date] = struct{}{}
	}
	for date := range r.ExternalBlockedDates {
		seen[date] = struct{}{}
	}

	dates := make([]types.Date, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// BlockedSlotList возвращает отсортированное объединение заблокированных слотов
func (r *AvailabilityRecord) BlockedSlotList() []Slot {
	seen := make(map[Slot]struct{}, len(r.HostBlockedSlots)+len(r.ExternalBlockedSlots))
	for slot := range r.HostBlockedSlots {
		seen[slot] = struct{}{}
	}
	for slot := range r.ExternalBlockedSlots {
		seen[slot] = struct{}{}
	}

	slots := make([]Slot, 0, len(seen))
	for slot := range seen {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Hour < slots[j].Hour
	})
	return slots
}
