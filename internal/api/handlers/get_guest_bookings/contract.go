package get_guest_bookings

import (
	"context"

	"github.com/blocmark/BM-PricingService/internal/service/bookings/models"
)

type BookingService interface {
	GetGuestBookings(ctx context.Context, guestID int64, status *string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
