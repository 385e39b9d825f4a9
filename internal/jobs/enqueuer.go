package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Enqueuer ставит задачи в очередь asynq
type Enqueuer struct {
	client             *asynq.Client
	notificationsRetry int
	mediaRetry         int
	logger             Logger
}

// NewEnqueuer создает новый экземпляр enqueuer'а
func NewEnqueuer(client *asynq.Client, notificationsMaxRetry, mediaMaxRetry int, logger Logger) *Enqueuer {
	return &Enqueuer{
		client:             client,
		notificationsRetry: notificationsMaxRetry,
		mediaRetry:         mediaMaxRetry,
		logger:             logger,
	}
}

// EnqueueSweep ставит задачу уборки истекших резерваций
func (e *Enqueuer) EnqueueSweep(ctx context.Context) error {
	if _, err := e.client.EnqueueContext(ctx, NewSweepTask()); err != nil {
		return fmt.Errorf("jobs: failed to enqueue sweep task: %w", err)
	}
	return nil
}

// EnqueueDispatch ставит задачу доставки уведомления
func (e *Enqueuer) EnqueueDispatch(ctx context.Context, notificationID int64) error {
	task, opts, err := NewNotificationTask(notificationID, e.notificationsRetry)
	if err != nil {
		return fmt.Errorf("jobs: failed to build notification task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("jobs: failed to enqueue notification task: %w", err)
	}
	e.logger.Info("Enqueuer: notification id=%d queued for dispatch", notificationID)
	return nil
}

// EnqueueIngest ставит задачу приемки медиа-файла
func (e *Enqueuer) EnqueueIngest(ctx context.Context, mediaID int64) error {
	task, opts, err := NewIngestTask(mediaID, e.mediaRetry)
	if err != nil {
		return fmt.Errorf("jobs: failed to build ingest task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("jobs: failed to enqueue ingest task: %w", err)
	}
	e.logger.Info("Enqueuer: media id=%d queued for ingest", mediaID)
	return nil
}

// EnqueueTranscode ставит задачу транскодирования
func (e *Enqueuer) EnqueueTranscode(ctx context.Context, mediaID int64) error {
	task, opts, err := NewTranscodeTask(mediaID, e.mediaRetry)
	if err != nil {
		return fmt.Errorf("jobs: failed to build transcode task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("jobs: failed to enqueue transcode task: %w", err)
	}
	e.logger.Info("Enqueuer: media id=%d queued for transcoding", mediaID)
	return nil
}
