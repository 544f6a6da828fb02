package update_rate_matrix

import (
	"github.com/blocmark/BM-PricingService/internal/service/rates/models"
)

// UpdateRateMatrixRequest тело запроса на обновление rate matrix
// Все секции опциональны; отсутствующая секция не меняет соответствующую
// часть конфигурации
type UpdateRateMatrixRequest struct {
	Rates           []models.RateInput      `json:"rates,omitempty"`
	TierToggles     []models.TierToggle     `json:"tierToggles,omitempty"`
	ActivityToggles []models.ActivityToggle `json:"activityToggles,omitempty"`
	Fees            *[]models.FeeInput      `json:"fees,omitempty"`
	MinBookingHours *int                    `json:"minBookingHours,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateRateMatrixRequest) ToServiceRequest(userID, venueID int64) *models.UpdateRateMatrixRequest {
	return &models.UpdateRateMatrixRequest{
		UserID:          userID,
		VenueID:         venueID,
		Rates:           r.Rates,
		TierToggles:     r.TierToggles,
		ActivityToggles: r.ActivityToggles,
		Fees:            r.Fees,
		MinBookingHours: r.MinBookingHours,
	}
}
