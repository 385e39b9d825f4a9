package transcode_media

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	mediaRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/media"
	"github.com/nordeim/Elderly-Care-Center/pkg/ptr"
)

// UseCase use case транскодирования медиа-элемента
type UseCase struct {
	mediaRepo  MediaRepository
	transcoder Transcoder
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mediaRepo MediaRepository,
	transcoder Transcoder,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		mediaRepo:  mediaRepo,
		transcoder: transcoder,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute транскодирует медиа-элемент и публикует рендиции.
// Ошибка ffmpeg фиксируется на элементе и пробрасывается наверх,
// чтобы очередь повторила задачу с backoff.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.MediaID <= 0 {
		return nil, fmt.Errorf("%w: mediaID must be positive", ErrInvalidInput)
	}

	item, err := uc.mediaRepo.GetByID(ctx, req.MediaID)
	if err != nil {
		if errors.Is(err, mediaRepo.ErrMediaNotFound) {
			uc.logger.Warn("TranscodeMedia: media id=%d not found", req.MediaID)
			return &Response{MediaID: req.MediaID, Outcome: OutcomeSkipped}, nil
		}
		uc.logger.Error("TranscodeMedia: failed to get media id=%d: %v", req.MediaID, err)
		return nil, fmt.Errorf("%w: failed to get media: %v", ErrInternal, err)
	}

	if item.Status == domain.MediaReady {
		uc.logger.Info("TranscodeMedia: media id=%d already ready", item.ID)
		return &Response{MediaID: item.ID, Outcome: OutcomeSkipped}, nil
	}

	uc.metrics.RecordTranscodeStart()

	conversions, err := uc.transcoder.Transcode(ctx, item, item.FileURL)
	if err != nil {
		uc.logger.Error("TranscodeMedia: transcoding failed for media id=%d: %v", item.ID, err)
		uc.metrics.RecordTranscodeFailure()
		if markErr := uc.mediaRepo.MarkStatus(ctx, item.ID, domain.MediaFailed, ptr.Ptr(err.Error())); markErr != nil {
			uc.logger.Error("TranscodeMedia: failed to mark media id=%d failed: %v", item.ID, markErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
	}

	// Рендиции и статус ready записываются одним обновлением
	if err := uc.mediaRepo.StoreConversions(ctx, item.ID, conversions); err != nil {
		uc.logger.Error("TranscodeMedia: failed to store conversions for media id=%d: %v", item.ID, err)
		return nil, fmt.Errorf("%w: failed to store conversions: %v", ErrInternal, err)
	}

	uc.metrics.RecordTranscodeSuccess()
	uc.logger.Info("TranscodeMedia: media id=%d is ready (%d video renditions)",
		item.ID, len(conversions.Video))

	return &Response{MediaID: item.ID, Outcome: OutcomeReady}, nil
}
