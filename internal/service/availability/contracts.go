package availability

import (
	"context"
	"time"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория блокировок календаря
type AvailabilityRepository interface {
	GetByVenue(ctx context.Context, venueID int64) (*domain.AvailabilityRecord, error)
	AddBlockedDates(ctx context.Context, venueID int64, source domain.BlockSource, dates []types.Date) error
	AddBlockedSlots(ctx context.Context, venueID int64, source domain.BlockSource, slots []domain.Slot) error
	RemoveBlockedDates(ctx context.Context, venueID int64, dates []types.Date) error
	RemoveBlockedSlots(ctx context.Context, venueID int64, slots []domain.Slot) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на основе системных часов
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
