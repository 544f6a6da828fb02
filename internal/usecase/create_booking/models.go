package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
)

// Request модель запроса на создание бронирования
// Бронирование занимает целые часы [StartHour, EndHour) одного календарного дня
type Request struct {
	GuestID           int64                  // ID гостя
	VenueID           int64                  // ID площадки
	ActivityType      string                 // Тип активности
	Tier              *string                // Явный group-size tier (опционально)
	AttendeeCount     *int                   // Количество гостей для вывода tier (опционально)
	Date              string                 // Дата бронирования ("2026-03-15")
	StartHour         int                    // Час начала (0-23)
	EndHour           int                    // Час конца, не включается (1-24)
	ExtraFees         []build_quote.FeeInput // Дополнительные сборы поверх сборов площадки
	CustomPrice       *decimal.Decimal       // Договорная базовая стоимость (опционально)
	WaiveMinimumHours bool                   // Снять требование минимальной длительности (только с CustomPrice)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking     *domain.Booking // Созданное бронирование
	RedirectURL string          // URL платежной страницы
}
