package calendarfeed

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

type BookingRepository interface {
	ListByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error)
}

type CaregiverRepository interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*domain.CaregiverProfile, *domain.User, error)
}

type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
