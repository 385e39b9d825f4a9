package get_upcoming_slots

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings/models"
)

type BookingService interface {
	ListUpcomingSlots(ctx context.Context, from time.Time, limit uint64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
