package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Типы задач очереди
const (
	TypeReservationSweep     = "reservation:sweep"
	TypeNotificationDispatch = "notification:dispatch"
	TypeMediaIngest          = "media:ingest"
	TypeMediaTranscode       = "media:transcode"
)

// NotificationPayload полезная нагрузка задачи доставки уведомления
type NotificationPayload struct {
	NotificationID int64 `json:"notificationId"`
}

// MediaPayload полезная нагрузка задач медиа-пайплайна
type MediaPayload struct {
	MediaID int64 `json:"mediaId"`
}

// NewSweepTask создает задачу уборки истекших резерваций
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeReservationSweep, nil)
}

// NewNotificationTask создает задачу доставки уведомления
func NewNotificationTask(notificationID int64, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(NotificationPayload{NotificationID: notificationID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationDispatch, payload)
	opts := []asynq.Option{asynq.MaxRetry(maxRetry)}
	return task, opts, nil
}

// NewIngestTask создает задачу приемки медиа-файла
func NewIngestTask(mediaID int64, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(MediaPayload{MediaID: mediaID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMediaIngest, payload)
	opts := []asynq.Option{asynq.MaxRetry(maxRetry)}
	return task, opts, nil
}

// NewTranscodeTask создает задачу транскодирования
func NewTranscodeTask(mediaID int64, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(MediaPayload{MediaID: mediaID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMediaTranscode, payload)
	opts := []asynq.Option{asynq.MaxRetry(maxRetry)}
	return task, opts, nil
}
