package update_booking_status

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, cancelledAt *time.Time) error
	AppendHistory(ctx context.Context, entry *domain.BookingStatusHistory) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error)
	ReleaseCapacity(ctx context.Context, slotID int64) error
}

// CaregiverRepository интерфейс репозитория профилей опекунов
type CaregiverRepository interface {
	ListProfilesByClientID(ctx context.Context, clientID int64) ([]*domain.CaregiverProfile, []*domain.User, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.BookingNotification) (*domain.BookingNotification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков переходов статусов
type Metrics interface {
	RecordStatusChange(from, to string)
	RecordNotificationScheduled(channel string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
