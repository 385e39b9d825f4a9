package sweep_reservations

import (
	"context"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	ListExpired(ctx context.Context, now time.Time, limit uint64) ([]*domain.SlotReservation, error)
	DeleteExpired(ctx context.Context, id int64, now time.Time) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ReleaseCapacity(ctx context.Context, slotID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счетчиков sweeper'а
type Metrics interface {
	RecordSweeperRun(result string)
	RecordReservationSwept()
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
