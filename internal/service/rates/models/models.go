package models

import (
	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
)

// Request модели

// RateInput одна ячейка rate matrix
type RateInput struct {
	ActivityType string  `json:"activityType"`
	Tier         string  `json:"tier"`
	HourlyRate   float64 `json:"hourlyRate"`
}

// ActivityToggle включение/отключение активности
type ActivityToggle struct {
	ActivityType string `json:"activityType"`
	Enabled      bool   `json:"enabled"`
}

// TierToggle включение/отключение group-size tier
type TierToggle struct {
	Tier    string `json:"tier"`
	Enabled bool   `json:"enabled"`
}

// FeeInput дополнительный сбор площадки
type FeeInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"` // flat | percentage
}

// UpdateRateMatrixRequest запрос на обновление rate matrix площадки
// Все секции опциональны, применяются в порядке: ставки, tiers, активности, сборы, минимум часов
type UpdateRateMatrixRequest struct {
	UserID          int64            `json:"userId"`
	VenueID         int64            `json:"venueId"`
	Rates           []RateInput      `json:"rates,omitempty"`
	TierToggles     []TierToggle     `json:"tierToggles,omitempty"`
	ActivityToggles []ActivityToggle `json:"activityToggles,omitempty"`
	Fees            *[]FeeInput      `json:"fees,omitempty"`
	MinBookingHours *int             `json:"minBookingHours,omitempty"`
}

// ToDomainFees конвертирует входные сборы в domain модели с валидацией
func ToDomainFees(inputs []FeeInput) ([]domain.AdditionalFee, error) {
	fees := make([]domain.AdditionalFee, 0, len(inputs))
	for _, input := range inputs {
		fee, err := domain.NewAdditionalFee(
			input.Name,
			decimal.NewFromFloat(input.Amount),
			domain.FeeType(input.Type),
		)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// Response модели

// FeeResponse дополнительный сбор в ответе
type FeeResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// RateMatrixResponse ответ с rate matrix площадки
// Ставки сгруппированы по активности, затем по tier; суммы отдаются строками
// с двумя знаками после запятой
type RateMatrixResponse struct {
	VenueID           int64                        `json:"venueId"`
	Currency          string                       `json:"currency"`
	MinBookingHours   int                          `json:"minBookingHours"`
	Rates             map[string]map[string]string `json:"rates"`
	EnabledActivities []string                     `json:"enabledActivities"`
	EnabledTiers      []string                     `json:"enabledTiers"`
	Fees              []FeeResponse                `json:"fees"`
}

// FromDomainVenue конвертирует площадку в ответ rate matrix
func FromDomainVenue(v *domain.Venue) *RateMatrixResponse {
	if v == nil {
		return nil
	}

	resp := &RateMatrixResponse{
		VenueID:           v.ID,
		Currency:          v.Currency,
		MinBookingHours:   v.MinBookingHours,
		Rates:             make(map[string]map[string]string),
		EnabledActivities: make([]string, 0),
		EnabledTiers:      make([]string, 0),
		Fees:              make([]FeeResponse, 0, len(v.AdditionalFees)),
	}

	if v.RateMatrix != nil {
		for activity, tiers := range v.RateMatrix.Rates {
			row := make(map[string]string, len(tiers))
			for tier, rate := range tiers {
				row[string(tier)] = rate.StringFixed(2)
			}
			resp.Rates[string(activity)] = row
		}
		for _, activity := range v.RateMatrix.EnabledActivityList() {
			resp.EnabledActivities = append(resp.EnabledActivities, string(activity))
		}
		for _, tier := range v.RateMatrix.EnabledTierList() {
			resp.EnabledTiers = append(resp.EnabledTiers, string(tier))
		}
	}

	for _, fee := range v.AdditionalFees {
		resp.Fees = append(resp.Fees, FeeResponse{
			Name:   fee.Name,
			Amount: fee.Amount.StringFixed(2),
			Type:   string(fee.Type),
		})
	}

	return resp
}
