package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ActivityType тип активности (photoshoot, filming, event и т.д.)
// Свободная строка: площадки сами определяют набор активностей
type ActivityType string

// Validate проверяет корректность типа активности
func (a ActivityType) Validate() error {
	trimmed := strings.TrimSpace(string(a))
	if trimmed == "" {
		return fmt.Errorf("%w: empty activity type", ErrInvalidActivityType)
	}
	if len(trimmed) > MaxActivityTypeLength {
		return fmt.Errorf("%w: activity type too long", ErrInvalidActivityType)
	}
	return nil
}

// RateMatrix матрица почасовых ставок площадки: активность x размер группы
//
// Включенность активностей и tiers хранится явно, а не выводится из наличия
// цены: ставка $0 и "выключено" — разные состояния. Отключение активности
// мягкое: цены сохраняются и восстанавливаются при повторном включении.
type RateMatrix struct {
	Rates             map[ActivityType]map[GroupSizeTier]decimal.Decimal
	EnabledActivities map[ActivityType]bool
	EnabledTiers      map[GroupSizeTier]bool
}

// NewRateMatrix создает пустую матрицу; tier small включен всегда
func NewRateMatrix() *RateMatrix {
	return &RateMatrix{
		Rates:             make(map[ActivityType]map[GroupSizeTier]decimal.Decimal),
		EnabledActivities: make(map[ActivityType]bool),
		EnabledTiers:      map[GroupSizeTier]bool{TierSmall: true},
	}
}

// DefaultRateMatrix создает матрицу из единой legacy-ставки площадки:
// все перечисленные активности включаются с этой ставкой для tier small
func DefaultRateMatrix(activities []ActivityType, flatRate decimal.Decimal) (*RateMatrix, error) {
	if flatRate.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeRate, flatRate)
	}

	m := NewRateMatrix()
	for _, activity := range activities {
		if err := activity.Validate(); err != nil {
			return nil, err
		}
		if err := m.SetRate(activity, TierSmall, flatRate); err != nil {
			return nil, err
		}
		if flatRate.IsPositive() {
			m.EnabledActivities[activity] = true
		}
	}
	return m, nil
}

// GetRate возвращает почасовую ставку для комбинации (активность, tier)
// Второе значение false означает "ставка недоступна": активность или tier
// выключены либо цена не установлена. Вызывающая сторона обязана отличать
// это от легитимной нулевой ставки
func (m *RateMatrix) GetRate(activity ActivityType, tier GroupSizeTier) (decimal.Decimal, bool) {
	if !m.EnabledActivities[activity] || !m.EnabledTiers[tier] {
		return decimal.Decimal{}, false
	}

	rates, ok := m.Rates[activity]
	if !ok {
		return decimal.Decimal{}, false
	}

	rate, ok := rates[tier]
	if !ok {
		return decimal.Decimal{}, false
	}
	return rate, true
}

// SetRate устанавливает почасовую ставку
// Отрицательные значения отклоняются как ошибка валидации, не обрезаются до нуля
func (m *RateMatrix) SetRate(activity ActivityType, tier GroupSizeTier, rate decimal.Decimal) error {
	if err := activity.Validate(); err != nil {
		return err
	}
	if !tier.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeRate, rate)
	}

	if m.Rates[activity] == nil {
		m.Rates[activity] = make(map[GroupSizeTier]decimal.Decimal)
	}
	m.Rates[activity][tier] = rate
	return nil
}

// SetActivityEnabled включает или выключает активность
// Включение требует положительной ставки для tier small; выключение мягкое —
// введенные владельцем цены сохраняются
func (m *RateMatrix) SetActivityEnabled(activity ActivityType, enabled bool) error {
	if err := activity.Validate(); err != nil {
		return err
	}

	if !enabled {
		delete(m.EnabledActivities, activity)
		return nil
	}

	smallRate, ok := m.Rates[activity][TierSmall]
	if !ok || !smallRate.IsPositive() {
		return fmt.Errorf("%w: activity %q", ErrActivityNeedsSmallRate, activity)
	}

	m.EnabledActivities[activity] = true
	return nil
}

// SetTierEnabled включает или выключает tier
// Выключение small отклоняется безусловно: small обязателен
func (m *RateMatrix) SetTierEnabled(tier GroupSizeTier, enabled bool) error {
	if !tier.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}

	if tier == TierSmall && !enabled {
		return ErrSmallTierMandatory
	}

	if enabled {
		m.EnabledTiers[tier] = true
	} else {
		delete(m.EnabledTiers, tier)
	}
	return nil
}

// EnabledActivityList возвращает отсортированный список включенных активностей
func (m *RateMatrix) EnabledActivityList() []ActivityType {
	activities := make([]ActivityType, 0, len(m.EnabledActivities))
	for activity := range m.EnabledActivities {
		activities = append(activities, activity)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i] < activities[j] })
	return activities
}

// EnabledTierList возвращает включенные tiers в порядке возрастания размера группы
func (m *RateMatrix) EnabledTierList() []GroupSizeTier {
	tiers := make([]GroupSizeTier, 0, len(m.EnabledTiers))
	for _, tier := range AllTiers {
		if m.EnabledTiers[tier] {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}
