package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// NotificationLister интерфейс выборки уведомлений к отправке
type NotificationLister interface {
	ListDue(ctx context.Context, now time.Time, limit uint64) ([]*domain.BookingNotification, error)
}

// DispatchEnqueuer интерфейс постановки задач доставки
type DispatchEnqueuer interface {
	EnqueueDispatch(ctx context.Context, notificationID int64) error
}

// NotificationPoller по тику cron'а переносит созревшие pending
// уведомления в очередь доставки. Доставка идемпотентна (терминальный
// guard в use case), поэтому повторная постановка того же уведомления
// безвредна.
type NotificationPoller struct {
	lister    NotificationLister
	enqueuer  DispatchEnqueuer
	logger    Logger
	batchSize uint64
}

// NewNotificationPoller создает новый экземпляр poller'а
func NewNotificationPoller(lister NotificationLister, enqueuer DispatchEnqueuer, logger Logger, batchSize int) *NotificationPoller {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &NotificationPoller{
		lister:    lister,
		enqueuer:  enqueuer,
		logger:    logger,
		batchSize: uint64(batchSize),
	}
}

// Run выполняет один проход
func (p *NotificationPoller) Run(ctx context.Context) error {
	due, err := p.lister.ListDue(ctx, time.Now(), p.batchSize)
	if err != nil {
		p.logger.Error("NotificationPoller: failed to list due notifications: %v", err)
		return fmt.Errorf("jobs: failed to list due notifications: %w", err)
	}

	for _, notification := range due {
		if err := p.enqueuer.EnqueueDispatch(ctx, notification.ID); err != nil {
			p.logger.Error("NotificationPoller: failed to enqueue notification id=%d: %v",
				notification.ID, err)
			return err
		}
	}

	if len(due) > 0 {
		p.logger.Info("NotificationPoller: queued %d due notifications", len(due))
	}
	return nil
}
