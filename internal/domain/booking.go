package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPendingPayment   BookingStatus = "pending_payment"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByGuest BookingStatus = "cancelled_by_guest"
	StatusCancelledByHost  BookingStatus = "cancelled_by_host"
	StatusPaymentFailed    BookingStatus = "payment_failed"
)

// Booking подтвержденное резервирование площадки, созданное из котировки
// Раскладка цены денормализуется в запись: котировка неизменяема, а история
// бронирования должна переживать смену тарифов площадки
type Booking struct {
	ID            uuid.UUID
	VenueID       int64
	GuestID       int64
	ActivityType  ActivityType
	GroupSizeTier GroupSizeTier

	BookingDate types.Date
	StartHour   int // включительно
	EndHour     int // исключительно
	Hours       int

	IsCustomPrice       bool
	BaseSubtotal        decimal.Decimal
	AdditionalFeesTotal decimal.Decimal
	PlatformFee         decimal.Decimal
	ProcessingFee       decimal.Decimal
	NetToHost           decimal.Decimal
	TotalToPayer        decimal.Decimal

	Status      BookingStatus
	CheckoutRef *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает свои слоты
func (b *Booking) IsActive() bool {
	switch b.Status {
	case StatusCancelledByGuest, StatusCancelledByHost, StatusPaymentFailed:
		return false
	default:
		return true
	}
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// IsCancelled возвращает true для отмененных бронирований
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByGuest || b.Status == StatusCancelledByHost
}

// Slots возвращает часовые слоты, занимаемые бронированием
func (b *Booking) Slots() []Slot {
	slots := make([]Slot, 0, b.EndHour-b.StartHour)
	for hour := b.StartHour; hour < b.EndHour; hour++ {
		slots = append(slots, Slot{Date: b.BookingDate, Hour: hour})
	}
	return slots
}

// VenueBookingsFilter фильтр для выборки бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // обязательный параметр
	StartDate       *types.Date    // начало периода (опционально)
	EndDate         *types.Date    // конец периода (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли отмененные и несостоявшиеся
}
