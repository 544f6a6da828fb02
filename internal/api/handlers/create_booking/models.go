package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	buildQuote "github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
	createBooking "github.com/blocmark/BM-PricingService/internal/usecase/create_booking"
)

// FeeInput дополнительный сбор в HTTP запросе
type FeeInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"` // flat | percentage
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID           int64      `json:"venueId"`
	ActivityType      string     `json:"activityType"`
	Tier              *string    `json:"tier,omitempty"`
	AttendeeCount     *int       `json:"attendeeCount,omitempty"`
	Date              string     `json:"date"`      // "2026-03-15"
	StartHour         int        `json:"startHour"` // 0-23
	EndHour           int        `json:"endHour"`   // не включается
	ExtraFees         []FeeInput `json:"extraFees,omitempty"`
	CustomPrice       *float64   `json:"customPrice,omitempty"`
	WaiveMinimumHours bool       `json:"waiveMinimumHours,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  string `json:"id"`
	VenueID             int64  `json:"venueId"`
	GuestID             int64  `json:"guestId"`
	ActivityType        string `json:"activityType"`
	GroupSizeTier       string `json:"groupSizeTier"`
	Date                string `json:"date"`
	StartHour           int    `json:"startHour"`
	EndHour             int    `json:"endHour"`
	Hours               int    `json:"hours"`
	Status              string `json:"status"`
	IsCustomPrice       bool   `json:"isCustomPrice"`
	BaseSubtotal        string `json:"baseSubtotal"`
	AdditionalFeesTotal string `json:"additionalFeesTotal"`
	PlatformFee         string `json:"platformFee"`
	ProcessingFee       string `json:"processingFee"`
	NetToHost           string `json:"netToHost"`
	TotalToPayer        string `json:"totalToPayer"`
	RedirectURL         string `json:"redirectUrl"`
	CreatedAt           string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(guestID int64) *createBooking.Request {
	extraFees := make([]buildQuote.FeeInput, 0, len(r.ExtraFees))
	for _, fee := range r.ExtraFees {
		extraFees = append(extraFees, buildQuote.FeeInput{
			Name:   fee.Name,
			Amount: fee.Amount,
			Type:   fee.Type,
		})
	}

	var customPrice *decimal.Decimal
	if r.CustomPrice != nil {
		price := decimal.NewFromFloat(*r.CustomPrice)
		customPrice = &price
	}

	return &createBooking.Request{
		GuestID:           guestID,
		VenueID:           r.VenueID,
		ActivityType:      r.ActivityType,
		Tier:              r.Tier,
		AttendeeCount:     r.AttendeeCount,
		Date:              r.Date,
		StartHour:         r.StartHour,
		EndHour:           r.EndHour,
		ExtraFees:         extraFees,
		CustomPrice:       customPrice,
		WaiveMinimumHours: r.WaiveMinimumHours,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:                  b.ID.String(),
		VenueID:             b.VenueID,
		GuestID:             b.GuestID,
		ActivityType:        string(b.ActivityType),
		GroupSizeTier:       string(b.GroupSizeTier),
		Date:                b.BookingDate.String(),
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
		RedirectURL:         resp.RedirectURL,
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
	}
}
