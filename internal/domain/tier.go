package domain

import "fmt"

// GroupSizeTier дискретная категория размера группы для выбора ставки из rate matrix
type GroupSizeTier string

const (
	TierSmall      GroupSizeTier = "small"      // 1-5 человек
	TierMedium     GroupSizeTier = "medium"     // 6-15 человек
	TierLarge      GroupSizeTier = "large"      // 16-30 человек
	TierExtraLarge GroupSizeTier = "extraLarge" // 31+ человек
)

// TierRange диапазон количества участников для одного tier
// MaxAttendees = 0 означает отсутствие верхней границы
type TierRange struct {
	Tier         GroupSizeTier
	MinAttendees int
	MaxAttendees int
}

// TierRanges упорядоченные, смежные и непересекающиеся диапазоны tiers
// Каждое положительное количество участников попадает ровно в один диапазон
var TierRanges = []TierRange{
	{Tier: TierSmall, MinAttendees: 1, MaxAttendees: 5},
	{Tier: TierMedium, MinAttendees: 6, MaxAttendees: 15},
	{Tier: TierLarge, MinAttendees: 16, MaxAttendees: 30},
	{Tier: TierExtraLarge, MinAttendees: 31, MaxAttendees: 0},
}

// AllTiers список всех tiers в порядке возрастания размера группы
var AllTiers = []GroupSizeTier{TierSmall, TierMedium, TierLarge, TierExtraLarge}

// Valid проверяет, что значение является известным tier
func (t GroupSizeTier) Valid() bool {
	switch t {
	case TierSmall, TierMedium, TierLarge, TierExtraLarge:
		return true
	default:
		return false
	}
}

// ParseGroupSizeTier парсит tier из строки
func ParseGroupSizeTier(s string) (GroupSizeTier, error) {
	tier := GroupSizeTier(s)
	if !tier.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return tier, nil
}

// TierForAttendeeCount возвращает tier, в диапазон которого попадает
// указанное количество участников
func TierForAttendeeCount(count int) (GroupSizeTier, error) {
	if count <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidAttendeeCount, count)
	}

	for _, r := range TierRanges {
		if count >= r.MinAttendees && (r.MaxAttendees == 0 || count <= r.MaxAttendees) {
			return r.Tier, nil
		}
	}

	// Диапазоны покрывают все положительные значения, сюда не попадаем
	return "", fmt.Errorf("%w: got %d", ErrInvalidAttendeeCount, count)
}
