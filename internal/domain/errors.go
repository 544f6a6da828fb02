package domain

import (
	"errors"
	"fmt"

	"github.com/blocmark/BM-PricingService/pkg/types"
)

var (
	// ErrInvalidAttendeeCount возвращается при количестве участников <= 0
	ErrInvalidAttendeeCount = errors.New("domain: attendee count must be positive")

	// ErrNegativeRate возвращается при попытке установить отрицательную почасовую ставку
	ErrNegativeRate = errors.New("domain: hourly rate must be non-negative")

	// ErrUnknownTier возвращается при неизвестном group-size tier
	ErrUnknownTier = errors.New("domain: unknown group size tier")

	// ErrSmallTierMandatory возвращается при попытке отключить обязательный tier small
	ErrSmallTierMandatory = errors.New("domain: small tier is mandatory and cannot be disabled")

	// ErrActivityNeedsSmallRate возвращается при попытке включить активность
	// без установленной положительной ставки для tier small
	ErrActivityNeedsSmallRate = errors.New("domain: enabling an activity requires a positive small-tier rate")

	// ErrInvalidActivityType возвращается при пустом или некорректном типе активности
	ErrInvalidActivityType = errors.New("domain: invalid activity type")

	// ErrInvalidFee возвращается при некорректном дополнительном сборе
	// (пустое имя, отрицательная сумма, неизвестный тип)
	ErrInvalidFee = errors.New("domain: invalid additional fee")

	// ErrInvalidTimeRange возвращается при некорректном интервале бронирования
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrInvalidSlot возвращается при некорректном часовом слоте
	ErrInvalidSlot = errors.New("domain: invalid time slot")

	// ErrInvalidMinHours возвращается при minimum booking hours вне диапазона [1, 24]
	ErrInvalidMinHours = errors.New("domain: minimum booking hours must be between 1 and 24")

	// ErrInvalidBusyInterval возвращается при некорректном busy-интервале из внешнего календаря
	ErrInvalidBusyInterval = errors.New("domain: invalid busy interval")
)

// ConflictError описывает конфликт запрошенного интервала с заблокированным слотом
// Содержит первый заблокированный (дата, час), чтобы вызывающая сторона могла
// показать пользователю конкретную причину отказа
type ConflictError struct {
	Date types.Date
	Hour int
}

// Error реализует error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: requested interval conflicts with blocked slot %s %02d:00", e.Date, e.Hour)
}
