package sync_calendar

import (
	"github.com/blocmark/BM-PricingService/internal/domain"
)

// Request модель запроса на синхронизацию внешнего календаря
type Request struct {
	UserID  int64 // ID пользователя (владельца площадки)
	VenueID int64 // ID площадки
}

// Response модель ответа с календарем после синхронизации
type Response struct {
	Record      *domain.AvailabilityRecord // Актуальное состояние календаря
	MergedDates int                        // Количество полнодневных блокировок в фиде
	MergedSlots int                        // Количество почасовых блокировок в фиде
}
