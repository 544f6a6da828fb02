package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blocmark/BM-PricingService/pkg/types"
)

// TestCheckConflict_NoConflict проверяет прохождение свободного интервала
func TestCheckConflict_NoConflict(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckConflict(rec, start, end, now))
}

// TestCheckConflict_ReportsFirstBlockedSlot проверяет, что конфликт содержит
// первый заблокированный (дата, час) интервала
func TestCheckConflict_ReportsFirstBlockedSlot(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec.BlockSlots(
		Slot{Date: types.Date("2026-03-15"), Hour: 12},
		Slot{Date: types.Date("2026-03-15"), Hour: 13},
	)

	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)

	err := CheckConflict(rec, start, end, now)
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, types.Date("2026-03-15"), conflict.Date)
	assert.Equal(t, 12, conflict.Hour)
}

// TestCheckConflict_BlockedDay проверяет конфликт с полнодневной блокировкой
func TestCheckConflict_BlockedDay(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec.Block(types.Date("2026-03-15"))

	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

	err := CheckConflict(rec, start, end, now)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 10, conflict.Hour)
}

// TestCheckConflict_PastDate проверяет конфликт с прошедшей датой
func TestCheckConflict_PastDate(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	err := CheckConflict(rec, start, end, now)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
}

// TestCheckConflict_InvalidRange проверяет отклонение пустого интервала
func TestCheckConflict_InvalidRange(t *testing.T) {
	rec := NewAvailabilityRecord(1)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, CheckConflict(rec, start, start, now), ErrInvalidTimeRange)
}

// TestIntervalSlots проверяет разбиение интервала на часовые слоты
func TestIntervalSlots(t *testing.T) {
	start := time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 16, 1, 0, 0, 0, time.UTC)

	slots, err := IntervalSlots(start, end)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	// Интервал через полночь покрывает слоты обеих дат
	assert.Equal(t, Slot{Date: types.Date("2026-03-15"), Hour: 22}, slots[0])
	assert.Equal(t, Slot{Date: types.Date("2026-03-15"), Hour: 23}, slots[1])
	assert.Equal(t, Slot{Date: types.Date("2026-03-16"), Hour: 0}, slots[2])
}
