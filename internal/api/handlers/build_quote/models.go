package build_quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
	buildQuote "github.com/blocmark/BM-PricingService/internal/usecase/build_quote"
)

// FeeInput дополнительный сбор в HTTP запросе
type FeeInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"` // flat | percentage
}

// BuildQuoteRequest HTTP request model
type BuildQuoteRequest struct {
	VenueID           int64      `json:"venueId"`
	ActivityType      string     `json:"activityType"`
	Tier              *string    `json:"tier,omitempty"`
	AttendeeCount     *int       `json:"attendeeCount,omitempty"`
	StartTime         string     `json:"startTime"` // RFC 3339
	EndTime           string     `json:"endTime"`   // RFC 3339
	ExtraFees         []FeeInput `json:"extraFees,omitempty"`
	CustomPrice       *float64   `json:"customPrice,omitempty"`
	WaiveMinimumHours bool       `json:"waiveMinimumHours,omitempty"`
}

// BreakdownResponse раскладка стоимости в HTTP ответе
// Все суммы в строках с двумя знаками после запятой
type BreakdownResponse struct {
	BaseSubtotal        string `json:"baseSubtotal"`
	FlatFeesTotal       string `json:"flatFeesTotal"`
	PercentageFeesTotal string `json:"percentageFeesTotal"`
	AdditionalFeesTotal string `json:"additionalFeesTotal"`
	GrossTotal          string `json:"grossTotal"`
	PlatformFee         string `json:"platformFee"`
	ProcessingFee       string `json:"processingFee"`
	NetToHost           string `json:"netToHost"`
	TotalToPayer        string `json:"totalToPayer"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ID            string            `json:"id"`
	VenueID       int64             `json:"venueId"`
	ActivityType  string            `json:"activityType"`
	GroupSizeTier string            `json:"groupSizeTier"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
	Hours         int               `json:"hours"`
	IsCustomPrice bool              `json:"isCustomPrice"`
	Breakdown     BreakdownResponse `json:"breakdown"`
	CreatedAt     string            `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BuildQuoteRequest) ToUseCaseRequest() (*buildQuote.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

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

	return &buildQuote.Request{
		VenueID:           r.VenueID,
		ActivityType:      r.ActivityType,
		Tier:              r.Tier,
		AttendeeCount:     r.AttendeeCount,
		StartTime:         startTime,
		EndTime:           endTime,
		ExtraFees:         extraFees,
		CustomPrice:       customPrice,
		WaiveMinimumHours: r.WaiveMinimumHours,
	}, nil
}

// FromDomainQuote конвертирует котировку в HTTP response
func FromDomainQuote(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:            q.ID.String(),
		VenueID:       q.VenueID,
		ActivityType:  string(q.ActivityType),
		GroupSizeTier: string(q.GroupSizeTier),
		StartTime:     q.StartTime.Format(time.RFC3339),
		EndTime:       q.EndTime.Format(time.RFC3339),
		Hours:         q.Hours,
		IsCustomPrice: q.IsCustomPrice,
		Breakdown: BreakdownResponse{
			BaseSubtotal:        q.Breakdown.BaseSubtotal.StringFixed(2),
			FlatFeesTotal:       q.Breakdown.FlatFeesTotal.StringFixed(2),
			PercentageFeesTotal: q.Breakdown.PercentageFeesTotal.StringFixed(2),
			AdditionalFeesTotal: q.Breakdown.AdditionalFeesTotal.StringFixed(2),
			GrossTotal:          q.Breakdown.GrossTotal.StringFixed(2),
			PlatformFee:         q.Breakdown.PlatformFee.StringFixed(2),
			ProcessingFee:       q.Breakdown.ProcessingFee.StringFixed(2),
			NetToHost:           q.Breakdown.NetToHost.StringFixed(2),
			TotalToPayer:        q.Breakdown.TotalToPayer.StringFixed(2),
		},
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
}
