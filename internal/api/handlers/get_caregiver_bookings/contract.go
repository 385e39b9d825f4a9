package get_caregiver_bookings

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings/models"
)

type BookingService interface {
	GetCaregiverBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
