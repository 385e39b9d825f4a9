package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nordeim/Elderly-Care-Center/internal/usecase/dispatch_notification"
	"github.com/nordeim/Elderly-Care-Center/internal/usecase/ingest_media"
	"github.com/nordeim/Elderly-Care-Center/internal/usecase/sweep_reservations"
	"github.com/nordeim/Elderly-Care-Center/internal/usecase/transcode_media"
)

// SweepUseCase интерфейс use case уборки резерваций
type SweepUseCase interface {
	Execute(ctx context.Context) (*sweep_reservations.Result, error)
}

// DispatchUseCase интерфейс use case доставки уведомления
type DispatchUseCase interface {
	Execute(ctx context.Context, req *dispatch_notification.Request) (*dispatch_notification.Response, error)
}

// IngestUseCase интерфейс use case приемки медиа
type IngestUseCase interface {
	Execute(ctx context.Context, req *ingest_media.Request) (*ingest_media.Response, error)
}

// TranscodeUseCase интерфейс use case транскодирования
type TranscodeUseCase interface {
	Execute(ctx context.Context, req *transcode_media.Request) (*transcode_media.Response, error)
}

// Handlers связывает задачи очереди с use case'ами
type Handlers struct {
	sweep     SweepUseCase
	dispatch  DispatchUseCase
	ingest    IngestUseCase
	transcode TranscodeUseCase
	logger    Logger
}

// NewHandlers создает новый набор обработчиков задач
func NewHandlers(
	sweep SweepUseCase,
	dispatch DispatchUseCase,
	ingest IngestUseCase,
	transcode TranscodeUseCase,
	logger Logger,
) *Handlers {
	return &Handlers{
		sweep:     sweep,
		dispatch:  dispatch,
		ingest:    ingest,
		transcode: transcode,
		logger:    logger,
	}
}

// Register регистрирует обработчики на mux'е asynq
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeReservationSweep, h.handleSweep)
	mux.HandleFunc(TypeNotificationDispatch, h.handleDispatch)
	mux.HandleFunc(TypeMediaIngest, h.handleIngest)
	mux.HandleFunc(TypeMediaTranscode, h.handleTranscode)
}

func (h *Handlers) handleSweep(ctx context.Context, _ *asynq.Task) error {
	_, err := h.sweep.Execute(ctx)
	return err
}

func (h *Handlers) handleDispatch(ctx context.Context, task *asynq.Task) error {
	var payload NotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.logger.Error("Handlers: invalid notification payload: %v", err)
		// Непарсящийся payload бессмысленно повторять
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	_, err := h.dispatch.Execute(ctx, &dispatch_notification.Request{
		NotificationID: payload.NotificationID,
	})
	return err
}

func (h *Handlers) handleIngest(ctx context.Context, task *asynq.Task) error {
	var payload MediaPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.logger.Error("Handlers: invalid ingest payload: %v", err)
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	_, err := h.ingest.Execute(ctx, &ingest_media.Request{MediaID: payload.MediaID})
	return err
}

func (h *Handlers) handleTranscode(ctx context.Context, task *asynq.Task) error {
	var payload MediaPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.logger.Error("Handlers: invalid transcode payload: %v", err)
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	_, err := h.transcode.Execute(ctx, &transcode_media.Request{MediaID: payload.MediaID})
	return err
}

// RetryDelayFunc возвращает функцию расчета задержки повтора:
// для каждого типа задач своя нарастающая шкала backoff'а.
// Попытки за пределами шкалы используют ее последнее значение.
func RetryDelayFunc(notificationBackoff, mediaBackoff []int) asynq.RetryDelayFunc {
	return func(n int, _ error, task *asynq.Task) time.Duration {
		var schedule []int
		switch task.Type() {
		case TypeNotificationDispatch:
			schedule = notificationBackoff
		case TypeMediaIngest, TypeMediaTranscode:
			schedule = mediaBackoff
		default:
			return asynq.DefaultRetryDelayFunc(n, nil, task)
		}

		if len(schedule) == 0 {
			return asynq.DefaultRetryDelayFunc(n, nil, task)
		}

		idx := n - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(schedule) {
			idx = len(schedule) - 1
		}
		return time.Duration(schedule[idx]) * time.Second
	}
}
