package dispatch_notification

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingNotification, error)
	UpdateStatus(ctx context.Context, id int64, status domain.NotificationStatus, meta map[string]string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error)
}

// CaregiverRepository интерфейс репозитория профилей опекунов
type CaregiverRepository interface {
	GetProfileByID(ctx context.Context, id int64) (*domain.CaregiverProfile, *domain.User, error)
}

// EmailSender интерфейс канала доставки email
type EmailSender interface {
	Send(ctx context.Context, to, name, subject, body string) error
}

// SMSSender интерфейс канала доставки SMS
type SMSSender interface {
	Send(ctx context.Context, phone, body string) error
}

// Metrics интерфейс счетчиков уведомлений
type Metrics interface {
	RecordNotificationSent(channel string)
	RecordNotificationFailed(channel string)
	RecordNotificationSkipped(channel string)
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
