package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testActivity = ActivityType("photoshoot")

func newTestMatrix(t *testing.T) *RateMatrix {
	t.Helper()

	m := NewRateMatrix()
	require.NoError(t, m.SetRate(testActivity, TierSmall, decimal.NewFromInt(100)))
	require.NoError(t, m.SetActivityEnabled(testActivity, true))
	return m
}

// TestRateMatrix_GetRate проверяет выбор ставки и сигнал недоступности
func TestRateMatrix_GetRate(t *testing.T) {
	m := newTestMatrix(t)

	rate, ok := m.GetRate(testActivity, TierSmall)
	require.True(t, ok)
	assert.Equal(t, "100.00", rate.StringFixed(2))

	// Цена не установлена для tier
	_, ok = m.GetRate(testActivity, TierMedium)
	assert.False(t, ok)

	// Tier выключен, даже если цена есть
	require.NoError(t, m.SetRate(testActivity, TierLarge, decimal.NewFromInt(300)))
	_, ok = m.GetRate(testActivity, TierLarge)
	assert.False(t, ok)

	// После включения tier ставка становится доступной
	require.NoError(t, m.SetTierEnabled(TierLarge, true))
	rate, ok = m.GetRate(testActivity, TierLarge)
	require.True(t, ok)
	assert.Equal(t, "300.00", rate.StringFixed(2))
}

// TestRateMatrix_ZeroRateVsDisabled проверяет, что нулевая ставка и
// "выключено" - разные состояния
func TestRateMatrix_ZeroRateVsDisabled(t *testing.T) {
	m := newTestMatrix(t)

	require.NoError(t, m.SetRate(testActivity, TierMedium, decimal.Zero))
	require.NoError(t, m.SetTierEnabled(TierMedium, true))

	// Нулевая ставка легитимна и доступна
	rate, ok := m.GetRate(testActivity, TierMedium)
	require.True(t, ok)
	assert.True(t, rate.IsZero())

	// Выключенная активность недоступна независимо от цен
	require.NoError(t, m.SetActivityEnabled(testActivity, false))
	_, ok = m.GetRate(testActivity, TierMedium)
	assert.False(t, ok)
}

// TestRateMatrix_SetRate_Negative проверяет отклонение отрицательной ставки
func TestRateMatrix_SetRate_Negative(t *testing.T) {
	m := NewRateMatrix()

	err := m.SetRate(testActivity, TierSmall, decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, ErrNegativeRate)

	// Состояние матрицы не изменилось
	_, ok := m.Rates[testActivity]
	assert.False(t, ok)
}

// TestRateMatrix_SmallTierMandatory проверяет, что tier small нельзя отключить
func TestRateMatrix_SmallTierMandatory(t *testing.T) {
	m := newTestMatrix(t)

	err := m.SetTierEnabled(TierSmall, false)
	assert.ErrorIs(t, err, ErrSmallTierMandatory)

	// Small остался включенным
	assert.True(t, m.EnabledTiers[TierSmall])
}

// TestRateMatrix_ActivityNeedsSmallRate проверяет, что включение активности
// требует положительной ставки для tier small
func TestRateMatrix_ActivityNeedsSmallRate(t *testing.T) {
	m := NewRateMatrix()

	// Цены нет вообще
	err := m.SetActivityEnabled(ActivityType("filming"), true)
	assert.ErrorIs(t, err, ErrActivityNeedsSmallRate)

	// Нулевая ставка small недостаточна для включения
	require.NoError(t, m.SetRate(ActivityType("filming"), TierSmall, decimal.Zero))
	err = m.SetActivityEnabled(ActivityType("filming"), true)
	assert.ErrorIs(t, err, ErrActivityNeedsSmallRate)
}

// TestRateMatrix_SoftDisable проверяет, что отключение активности сохраняет цены
func TestRateMatrix_SoftDisable(t *testing.T) {
	m := newTestMatrix(t)
	require.NoError(t, m.SetRate(testActivity, TierMedium, decimal.NewFromInt(150)))

	require.NoError(t, m.SetActivityEnabled(testActivity, false))
	assert.Empty(t, m.EnabledActivityList())

	// Повторное включение восстанавливает прежние цены
	require.NoError(t, m.SetActivityEnabled(testActivity, true))
	rate, ok := m.GetRate(testActivity, TierSmall)
	require.True(t, ok)
	assert.Equal(t, "100.00", rate.StringFixed(2))
	assert.Equal(t, "150.00", m.Rates[testActivity][TierMedium].StringFixed(2))
}

// TestRateMatrix_EnabledTierList проверяет порядок tiers в списке
func TestRateMatrix_EnabledTierList(t *testing.T) {
	m := newTestMatrix(t)
	require.NoError(t, m.SetTierEnabled(TierExtraLarge, true))
	require.NoError(t, m.SetTierEnabled(TierMedium, true))

	assert.Equal(t, []GroupSizeTier{TierSmall, TierMedium, TierExtraLarge}, m.EnabledTierList())
}
