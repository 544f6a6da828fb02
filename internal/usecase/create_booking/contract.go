package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/internal/integrations/paymentservice"
	"github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
)

// QuoteBuilder интерфейс расчета стоимости аренды
type QuoteBuilder interface {
	Execute(ctx context.Context, req *build_quote.Request) (*build_quote.Response, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
	UpdateCheckoutRef(ctx context.Context, id uuid.UUID, checkoutRef string) error
	Cancel(ctx context.Context, id uuid.UUID, status domain.BookingStatus, reason string) error
}

// AvailabilityRepository интерфейс репозитория блокировок календаря
type AvailabilityRepository interface {
	GetByVenue(ctx context.Context, venueID int64) (*domain.AvailabilityRecord, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// PaymentServiceClient интерфейс клиента платежного сервиса
type PaymentServiceClient interface {
	CreateCheckoutSession(ctx context.Context, request paymentservice.CheckoutSessionRequest) (*paymentservice.CheckoutSession, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
