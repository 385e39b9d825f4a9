package bookings

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	ListByStatus(ctx context.Context, status *domain.BookingStatus, limit, offset uint64) ([]*domain.Booking, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	ListHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusHistory, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListUpcoming(ctx context.Context, from time.Time, limit uint64) ([]*domain.BookingSlot, error)
}

// CaregiverRepository интерфейс репозитория профилей опекунов
type CaregiverRepository interface {
	GetProfileByUserID(ctx context.Context, userID int64) (*domain.CaregiverProfile, *domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
