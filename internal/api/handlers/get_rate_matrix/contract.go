package get_rate_matrix

import (
	"context"

	"github.com/blocmark/BM-PricingService/internal/service/rates/models"
)

type RateService interface {
	Get(ctx context.Context, venueID int64) (*models.RateMatrixResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
