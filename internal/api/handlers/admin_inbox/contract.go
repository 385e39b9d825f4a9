package admin_inbox

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/service/bookings/models"
)

type BookingService interface {
	ListInbox(ctx context.Context, statusFilter *string, limit, offset uint64) (*models.InboxResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
