package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocmark/BM-PricingService/pkg/ptr"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// TestAvailabilityRecord_BlockUnblock проверяет идемпотентность блокировок
func TestAvailabilityRecord_BlockUnblock(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	date := types.Date("2026-03-15")

	rec.Block(date)
	rec.Block(date) // повторная блокировка - no-op
	assert.Len(t, rec.HostBlockedDates, 1)
	assert.True(t, rec.IsBlocked(date, testNow))

	rec.Unblock(date)
	rec.Unblock(date) // повторное снятие - no-op
	assert.Empty(t, rec.HostBlockedDates)
	assert.False(t, rec.IsBlocked(date, testNow))
}

// TestAvailabilityRecord_DaySubsumesSlots проверяет, что блокировка всего дня
// поглощает часовые слоты этой даты
func TestAvailabilityRecord_DaySubsumesSlots(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	date := types.Date("2026-03-15")

	rec.Block(date)

	for hour := 0; hour <= 23; hour++ {
		assert.True(t, rec.IsSlotBlocked(date, hour, testNow), "hour=%d", hour)
	}

	// Соседняя дата не затронута
	assert.False(t, rec.IsSlotBlocked(types.Date("2026-03-16"), 10, testNow))
}

// TestAvailabilityRecord_SlotBlocking проверяет почасовые блокировки
func TestAvailabilityRecord_SlotBlocking(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	slot := Slot{Date: types.Date("2026-03-15"), Hour: 10}

	rec.BlockSlots(slot)
	assert.True(t, rec.IsSlotBlocked(slot.Date, 10, testNow))
	assert.False(t, rec.IsSlotBlocked(slot.Date, 11, testNow))
	assert.False(t, rec.IsBlocked(slot.Date, testNow), "часовая блокировка не блокирует весь день")

	rec.UnblockSlots(slot)
	assert.False(t, rec.IsSlotBlocked(slot.Date, 10, testNow))
}

// TestAvailabilityRecord_PastDatesBlocked проверяет, что прошедшие даты
// недоступны независимо от блокировок
func TestAvailabilityRecord_PastDatesBlocked(t *testing.T) {
	rec := NewAvailabilityRecord(1)

	assert.True(t, rec.IsBlocked(types.Date("2026-02-28"), testNow))
	assert.True(t, rec.IsSlotBlocked(types.Date("2026-02-28"), 10, testNow))

	// Сегодняшний и будущие дни доступны
	assert.False(t, rec.IsBlocked(types.Date("2026-03-01"), testNow))
	assert.False(t, rec.IsBlocked(types.Date("2026-03-02"), testNow))
}

// TestAvailabilityRecord_UnblockDoesNotTouchExternal проверяет, что снятие
// блокировки владельцем не затрагивает записи внешнего календаря
func TestAvailabilityRecord_UnblockDoesNotTouchExternal(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	date := types.Date("2026-03-15")

	rec.Block(date)
	rec.ExternalBlockedDates[date] = struct{}{}

	rec.Unblock(date)

	// Дата все еще заблокирована внешним источником
	assert.True(t, rec.IsBlocked(date, testNow))
	assert.Empty(t, rec.HostBlockedDates)
	assert.Len(t, rec.ExternalBlockedDates, 1)
}

// TestAvailabilityRecord_MergeBusyIntervals проверяет аддитивное слияние фида
// внешнего календаря и его идемпотентность
func TestAvailabilityRecord_MergeBusyIntervals(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	rec.Block(types.Date("2026-03-10"))

	intervals := []BusyInterval{
		// событие на весь день и событие из трех часовых слотов
		{Date: types.Date("2026-03-15")},
		{Date: types.Date("2026-03-16"), StartHour: ptr.Ptr(9), EndHour: ptr.Ptr(12)},
	}

	require.NoError(t, rec.MergeBusyIntervals(intervals))
	assert.Len(t, rec.ExternalBlockedDates, 1)
	assert.Len(t, rec.ExternalBlockedSlots, 3)

	// Повторное применение того же фида не меняет состояние
	require.NoError(t, rec.MergeBusyIntervals(intervals))
	assert.Len(t, rec.ExternalBlockedDates, 1)
	assert.Len(t, rec.ExternalBlockedSlots, 3)

	// Записи владельца не затронуты
	assert.Len(t, rec.HostBlockedDates, 1)
}

// TestExpandBusyInterval проверяет раскрытие busy-интервалов
func TestExpandBusyInterval(t *testing.T) {
	// Событие без часов блокирует весь день
	fullDay, slots, err := ExpandBusyInterval(BusyInterval{Date: types.Date("2026-03-15")})
	require.NoError(t, err)
	assert.True(t, fullDay)
	assert.Empty(t, slots)

	// Событие с диапазоном блокирует слоты [start, end)
	fullDay, slots, err = ExpandBusyInterval(BusyInterval{
		Date:      types.Date("2026-03-15"),
		StartHour: ptr.Ptr(10),
		EndHour:   ptr.Ptr(13),
	})
	require.NoError(t, err)
	assert.False(t, fullDay)
	require.Len(t, slots, 3)
	assert.Equal(t, 10, slots[0].Hour)
	assert.Equal(t, 12, slots[2].Hour)

	// Некорректный диапазон
	_, _, err = ExpandBusyInterval(BusyInterval{
		Date:      types.Date("2026-03-15"),
		StartHour: ptr.Ptr(13),
		EndHour:   ptr.Ptr(10),
	})
	assert.ErrorIs(t, err, ErrInvalidBusyInterval)

	// Некорректная дата
	_, _, err = ExpandBusyInterval(BusyInterval{Date: types.Date("not-a-date")})
	assert.ErrorIs(t, err, ErrInvalidBusyInterval)
}

// TestAvailabilityRecord_BlockedLists проверяет сортировку объединенных списков
func TestAvailabilityRecord_BlockedLists(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	rec.Block(types.Date("2026-03-20"), types.Date("2026-03-05"))
	rec.ExternalBlockedDates[types.Date("2026-03-10")] = struct{}{}
	rec.BlockSlots(
		Slot{Date: types.Date("2026-03-06"), Hour: 15},
		Slot{Date: types.Date("2026-03-06"), Hour: 9},
	)

	dates := rec.BlockedDateList()
	require.Len(t, dates, 3)
	assert.Equal(t, types.Date("2026-03-05"), dates[0])
	assert.Equal(t, types.Date("2026-03-20"), dates[2])

	slotList := rec.BlockedSlotList()
	require.Len(t, slotList, 2)
	assert.Equal(t, 9, slotList[0].Hour)
	assert.Equal(t, 15, slotList[1].Hour)
}
