package rates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	UpsertRate(ctx context.Context, venueID int64, activity domain.ActivityType, tier domain.GroupSizeTier, rate decimal.Decimal) error
	SetActivityEnabled(ctx context.Context, venueID int64, activity domain.ActivityType, enabled bool) error
	SetTierEnabled(ctx context.Context, venueID int64, tier domain.GroupSizeTier, enabled bool) error
	ReplaceFees(ctx context.Context, venueID int64, fees []domain.AdditionalFee) error
	UpdateMinBookingHours(ctx context.Context, venueID int64, hours int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
