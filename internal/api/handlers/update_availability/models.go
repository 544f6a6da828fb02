package update_availability

import (
	"github.com/blocmark/BM-PricingService/internal/service/availability/models"
)

// SlotInput почасовой слот в теле запроса
type SlotInput struct {
	Date string `json:"date"` // "2026-03-15"
	Hour int    `json:"hour"` // 0-23
}

// UpdateAvailabilityRequest тело запроса на изменение календаря
type UpdateAvailabilityRequest struct {
	Mode   string      `json:"mode"`   // "full-day" | "time-slot"
	Action string      `json:"action"` // "block" | "unblock"
	Dates  []string    `json:"dates,omitempty"`
	Slots  []SlotInput `json:"slots,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID, venueID int64) *models.UpdateAvailabilityRequest {
	req := &models.UpdateAvailabilityRequest{
		UserID:  userID,
		VenueID: venueID,
		Mode:    r.Mode,
		Action:  r.Action,
		Dates:   r.Dates,
	}

	if len(r.Slots) > 0 {
		req.Slots = make([]models.SlotInput, 0, len(r.Slots))
		for _, slot := range r.Slots {
			req.Slots = append(req.Slots, models.SlotInput{
				Date: slot.Date,
				Hour: slot.Hour,
			})
		}
	}

	return req
}
