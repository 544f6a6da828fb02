package build_quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
)

// FeeInput дополнительный сбор, добавляемый к сборам площадки для этого расчета
type FeeInput struct {
	Name   string  // Название сбора
	Amount float64 // Сумма (для flat) или процент от базовой стоимости (для percentage)
	Type   string  // flat | percentage
}

// Request модель запроса на расчет стоимости
type Request struct {
	VenueID           int64            // ID площадки
	ActivityType      string           // Тип активности
	Tier              *string          // Явный group-size tier (опционально)
	AttendeeCount     *int             // Количество гостей для вывода tier (опционально)
	StartTime         time.Time        // Начало интервала
	EndTime           time.Time        // Конец интервала (не включается)
	ExtraFees         []FeeInput       // Дополнительные сборы поверх сборов площадки
	CustomPrice       *decimal.Decimal // Договорная базовая стоимость (опционально)
	WaiveMinimumHours bool             // Снять требование минимальной длительности (только с CustomPrice)
}

// Response модель ответа с рассчитанной котировкой
type Response struct {
	Quote *domain.Quote // Котировка с полной разбивкой стоимости
}
