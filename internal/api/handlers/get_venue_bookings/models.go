package get_venue_bookings

import (
	"fmt"
	"strconv"

	"github.com/blocmark/BM-PricingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	venueID int64,
	userID int64,
	startDateStr string,
	endDateStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		UserID:          userID,
		VenueID:         venueID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим startDate если указана
	if startDateStr != "" {
		req.StartDate = &startDateStr
	}

	// Парсим endDate если указана
	if endDateStr != "" {
		req.EndDate = &endDateStr
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
