package sync_calendar

import (
	"context"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/internal/integrations/calendarsync"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// AvailabilityRepository интерфейс репозитория блокировок календаря
type AvailabilityRepository interface {
	GetByVenue(ctx context.Context, venueID int64) (*domain.AvailabilityRecord, error)
	AddBlockedDates(ctx context.Context, venueID int64, source domain.BlockSource, dates []types.Date) error
	AddBlockedSlots(ctx context.Context, venueID int64, source domain.BlockSource, slots []domain.Slot) error
}

// CalendarServiceClient интерфейс клиента сервиса внешних календарей
type CalendarServiceClient interface {
	GetBusyIntervals(ctx context.Context, venueID int64) ([]calendarsync.BusyInterval, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
