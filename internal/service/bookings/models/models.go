package models

import (
	"errors"
	"time"

	"github.com/blocmark/BM-PricingService/internal/domain"
	"github.com/blocmark/BM-PricingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	UserID          int64   `json:"userId"`
	VenueID         int64   `json:"venueId"`
	StartDate       *string `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *string `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil {
		date, err := types.ParseDate(*r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &date
	}
	if r.EndDate != nil {
		date, err := types.ParseDate(*r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &date
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
// Денежные суммы отдаются строками с двумя знаками после запятой
type BookingResponse struct {
	ID            string `json:"id"`
	VenueID       int64  `json:"venueId"`
	GuestID       int64  `json:"guestId"`
	ActivityType  string `json:"activityType"`
	GroupSizeTier string `json:"groupSizeTier"`
	BookingDate   string `json:"bookingDate"` // "2026-03-15"
	StartHour     int    `json:"startHour"`
	EndHour       int    `json:"endHour"` // Не включается
	Hours         int    `json:"hours"`
	Status        string `json:"status"`
	IsCustomPrice bool   `json:"isCustomPrice"`

	BaseSubtotal        string `json:"baseSubtotal"`
	AdditionalFeesTotal string `json:"additionalFeesTotal"`
	PlatformFee         string `json:"platformFee"`
	ProcessingFee       string `json:"processingFee"`
	NetToHost           string `json:"netToHost"`
	TotalToPayer        string `json:"totalToPayer"`

	CheckoutRef        *string `json:"checkoutRef,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID.String(),
		VenueID:             b.VenueID,
		GuestID:             b.GuestID,
		ActivityType:        string(b.ActivityType),
		GroupSizeTier:       string(b.GroupSizeTier),
		BookingDate:         b.BookingDate.String(),
		StartHour:           b.StartHour,
		EndHour:             b.EndHour,
		Hours:               b.Hours,
		Status:              string(b.Status),
		IsCustomPrice:       b.IsCustomPrice,
		BaseSubtotal:        b.BaseSubtotal.StringFixed(2),
		AdditionalFeesTotal: b.AdditionalFeesTotal.StringFixed(2),
		PlatformFee:         b.PlatformFee.StringFixed(2),
		ProcessingFee:       b.ProcessingFee.StringFixed(2),
		NetToHost:           b.NetToHost.StringFixed(2),
		TotalToPayer:        b.TotalToPayer.StringFixed(2),
		CheckoutRef:         b.CheckoutRef,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPendingPayment,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByGuest,
		domain.StatusCancelledByHost,
		domain.StatusPaymentFailed,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
