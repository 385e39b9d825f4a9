package create_booking

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error)
	ReserveCapacity(ctx context.Context, slotID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	AppendHistory(ctx context.Context, entry *domain.BookingStatusHistory) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
	ResolveClientByEmail(ctx context.Context, input *domain.Client) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков бронирований
type Metrics interface {
	RecordBookingCreated(status string)
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
