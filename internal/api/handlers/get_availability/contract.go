package get_availability

import (
	"context"

	"github.com/blocmark/BM-PricingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Get(ctx context.Context, venueID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
