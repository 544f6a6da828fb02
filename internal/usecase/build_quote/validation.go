package build_quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blocmark/BM-PricingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if err := domain.ActivityType(req.ActivityType).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Нужен либо явный tier, либо количество гостей
	if req.Tier == nil && req.AttendeeCount == nil {
		return fmt.Errorf("%w: either tier or attendeeCount is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if req.CustomPrice != nil && req.CustomPrice.IsNegative() {
		return fmt.Errorf("%w: customPrice must not be negative", ErrInvalidInput)
	}

	// Снятие минимальной длительности имеет смысл только при договорной цене
	if req.WaiveMinimumHours && req.CustomPrice == nil {
		return fmt.Errorf("%w: waiveMinimumHours requires customPrice", ErrInvalidInput)
	}

	return nil
}

// resolveTier определяет group-size tier из запроса
// Явный tier имеет приоритет над количеством гостей
func resolveTier(req *Request) (domain.GroupSizeTier, error) {
	if req.Tier != nil {
		tier, err := domain.ParseGroupSizeTier(*req.Tier)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return tier, nil
	}

	tier, err := domain.TierForAttendeeCount(*req.AttendeeCount)
	if err != nil {
		return "", ErrInvalidAttendeeCount
	}
	return tier, nil
}

// collectFees объединяет сборы площадки с дополнительными сборами запроса
func collectFees(venue *domain.Venue, extra []FeeInput) ([]domain.AdditionalFee, error) {
	fees := make([]domain.AdditionalFee, 0, len(venue.AdditionalFees)+len(extra))
	fees = append(fees, venue.AdditionalFees...)

	for _, input := range extra {
		fee, err := domain.NewAdditionalFee(
			input.Name,
			decimal.NewFromFloat(input.Amount),
			domain.FeeType(input.Type),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fees = append(fees, fee)
	}

	return fees, nil
}
