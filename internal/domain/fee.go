package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeType тип дополнительного сбора
type FeeType string

const (
	FeeTypeFlat       FeeType = "flat"       // фиксированная сумма
	FeeTypePercentage FeeType = "percentage" // процент от базовой стоимости
)

// Valid проверяет, что значение является известным типом сбора
func (t FeeType) Valid() bool {
	return t == FeeTypeFlat || t == FeeTypePercentage
}

// AdditionalFee дополнительный сбор площадки (уборка, оборудование и т.д.)
// Процентные сборы считаются от базовой стоимости до начисления других сборов
type AdditionalFee struct {
	Name   string
	Amount decimal.Decimal
	Type   FeeType
}

// NewAdditionalFee создает валидированный дополнительный сбор
func NewAdditionalFee(name string, amount decimal.Decimal, feeType FeeType) (AdditionalFee, error) {
	fee := AdditionalFee{Name: strings.TrimSpace(name), Amount: amount, Type: feeType}
	if err := fee.Validate(); err != nil {
		return AdditionalFee{}, err
	}
	return fee, nil
}

// Validate проверяет корректность сбора
func (f AdditionalFee) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: empty fee name", ErrInvalidFee)
	}
	if len(f.Name) > MaxFeeNameLength {
		return fmt.Errorf("%w: fee name too long", ErrInvalidFee)
	}
	if f.Amount.IsNegative() {
		return fmt.Errorf("%w: fee %q has negative amount %s", ErrInvalidFee, f.Name, f.Amount)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("%w: fee %q has unknown type %q", ErrInvalidFee, f.Name, f.Type)
	}
	return nil
}

// FeeRates ставки платформенного и процессингового сборов
type FeeRates struct {
	Platform        decimal.Decimal // доля от gross total
	Processing      decimal.Decimal // доля от gross total
	ProcessingFixed decimal.Decimal // фиксированная часть процессингового сбора
}

// DefaultFeeRates ставки платформы по умолчанию: 5% + (2.9% + $0.30)
func DefaultFeeRates() FeeRates {
	return FeeRates{
		Platform:        decimal.NewFromFloat(0.05),
		Processing:      decimal.NewFromFloat(0.029),
		ProcessingFixed: decimal.NewFromFloat(0.30),
	}
}

// Breakdown полная раскладка стоимости бронирования
//
// Сборы платформы и процессинга удерживаются из выручки владельца, а не
// добавляются сверх суммы гостя: TotalToPayer всегда равен GrossTotal.
// Отрицательный NetToHost (сборы превысили стоимость) — валидное состояние,
// которое передается вызывающей стороне как есть, без обрезания до нуля.
//
// Промежуточные значения не округляются; округление до центов происходит
// только на границе отображения
type Breakdown struct {
	BaseSubtotal        decimal.Decimal
	FlatFeesTotal       decimal.Decimal
	PercentageFeesTotal decimal.Decimal
	AdditionalFeesTotal decimal.Decimal
	GrossTotal          decimal.Decimal
	PlatformFee         decimal.Decimal
	ProcessingFee       decimal.Decimal
	NetToHost           decimal.Decimal
	TotalToPayer        decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeBreakdown считает раскладку стоимости из базовой суммы,
// списка дополнительных сборов и ставок платформы
func ComputeBreakdown(subtotal decimal.Decimal, fees []AdditionalFee, rates FeeRates) Breakdown {
	flatTotal := decimal.Zero
	percentageTotal := decimal.Zero

	for _, fee := range fees {
		switch fee.Type {
		case FeeTypeFlat:
			flatTotal = flatTotal.Add(fee.Amount)
		case FeeTypePercentage:
			percentageTotal = percentageTotal.Add(fee.Amount.Div(oneHundred).Mul(subtotal))
		}
	}

	additionalTotal := flatTotal.Add(percentageTotal)
	grossTotal := subtotal.Add(additionalTotal)

	platformFee := grossTotal.Mul(rates.Platform)
	processingFee := grossTotal.Mul(rates.Processing).Add(rates.ProcessingFixed)
	netToHost := grossTotal.Sub(platformFee).Sub(processingFee)

	return Breakdown{
		BaseSubtotal:        subtotal,
		FlatFeesTotal:       flatTotal,
		PercentageFeesTotal: percentageTotal,
		AdditionalFeesTotal: additionalTotal,
		GrossTotal:          grossTotal,
		PlatformFee:         platformFee,
		ProcessingFee:       processingFee,
		NetToHost:           netToHost,
		TotalToPayer:        grossTotal,
	}
}

// ValidateFees проверяет список дополнительных сборов
func ValidateFees(fees []AdditionalFee) error {
	for _, fee := range fees {
		if err := fee.Validate(); err != nil {
			return err
		}
	}
	return nil
}
