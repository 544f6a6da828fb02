package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTierForAttendeeCount проверяет границы диапазонов tiers
func TestTierForAttendeeCount(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected GroupSizeTier
	}{
		{name: "один человек - small", count: 1, expected: TierSmall},
		{name: "верхняя граница small", count: 5, expected: TierSmall},
		{name: "нижняя граница medium", count: 6, expected: TierMedium},
		{name: "верхняя граница medium", count: 15, expected: TierMedium},
		{name: "нижняя граница large", count: 16, expected: TierLarge},
		{name: "верхняя граница large", count: 30, expected: TierLarge},
		{name: "нижняя граница extraLarge", count: 31, expected: TierExtraLarge},
		{name: "большая группа - extraLarge", count: 500, expected: TierExtraLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := TierForAttendeeCount(tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tier)
		})
	}
}

// TestTierForAttendeeCount_Invalid проверяет отклонение некорректного количества
func TestTierForAttendeeCount_Invalid(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		_, err := TierForAttendeeCount(count)
		assert.ErrorIs(t, err, ErrInvalidAttendeeCount, "count=%d", count)
	}
}

// TestParseGroupSizeTier проверяет парсинг tier из строки
func TestParseGroupSizeTier(t *testing.T) {
	tier, err := ParseGroupSizeTier("medium")
	require.NoError(t, err)
	assert.Equal(t, TierMedium, tier)

	_, err = ParseGroupSizeTier("gigantic")
	assert.ErrorIs(t, err, ErrUnknownTier)

	_, err = ParseGroupSizeTier("")
	assert.ErrorIs(t, err, ErrUnknownTier)
}
