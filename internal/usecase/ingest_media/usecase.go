package ingest_media

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	mediaRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/media"
	"github.com/nordeim/Elderly-Care-Center/pkg/ptr"
)

// UseCase use case приемки загруженного медиа-файла:
// антивирусная проверка и постановка на транскодирование.
// Повторный запуск над элементом в processing безопасен.
type UseCase struct {
	mediaRepo MediaRepository
	scanner   Scanner
	enqueuer  TranscodeEnqueuer
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mediaRepo MediaRepository,
	scanner Scanner,
	enqueuer TranscodeEnqueuer,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		mediaRepo: mediaRepo,
		scanner:   scanner,
		enqueuer:  enqueuer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute обрабатывает медиа-элемент.
// Ошибка возвращается только при провале проверки: очередь повторит
// задачу с backoff, терминальный провал зафиксирует сама очередь
// после исчерпания попыток.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.MediaID <= 0 {
		return nil, fmt.Errorf("%w: mediaID must be positive", ErrInvalidInput)
	}

	item, err := uc.mediaRepo.GetByID(ctx, req.MediaID)
	if err != nil {
		if errors.Is(err, mediaRepo.ErrMediaNotFound) {
			uc.logger.Warn("IngestMedia: media id=%d not found", req.MediaID)
			return &Response{MediaID: req.MediaID, Outcome: OutcomeSkipped}, nil
		}
		uc.logger.Error("IngestMedia: failed to get media id=%d: %v", req.MediaID, err)
		return nil, fmt.Errorf("%w: failed to get media: %v", ErrInternal, err)
	}

	// Уже опубликован — повторная доставка задачи из очереди ничего
	// не делает. Элемент в failed не отсекаем: retry очереди должен
	// заново прогнать проверку после временного сбоя сканера
	if item.Status == domain.MediaReady {
		uc.logger.Info("IngestMedia: media id=%d already %s", item.ID, item.Status)
		return &Response{MediaID: item.ID, Outcome: OutcomeSkipped}, nil
	}

	if err := uc.mediaRepo.MarkStatus(ctx, item.ID, domain.MediaProcessing, nil); err != nil {
		uc.logger.Error("IngestMedia: failed to mark media id=%d processing: %v", item.ID, err)
		return nil, fmt.Errorf("%w: failed to mark processing: %v", ErrInternal, err)
	}

	if uc.scanner.Enabled() {
		if err := uc.scanner.Scan(ctx, item.FileURL); err != nil {
			uc.logger.Error("IngestMedia: virus scan failed for media id=%d: %v", item.ID, err)
			uc.metrics.RecordVirusScanFailure()
			if markErr := uc.mediaRepo.MarkStatus(ctx, item.ID, domain.MediaFailed, ptr.Ptr(err.Error())); markErr != nil {
				uc.logger.Error("IngestMedia: failed to mark media id=%d failed: %v", item.ID, markErr)
			}
			// Пробрасываем наверх: очередь повторит с backoff
			return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
		}
	}

	if err := uc.enqueuer.EnqueueTranscode(ctx, item.ID); err != nil {
		uc.logger.Error("IngestMedia: failed to enqueue transcode for media id=%d: %v", item.ID, err)
		return nil, fmt.Errorf("%w: failed to enqueue transcode: %v", ErrInternal, err)
	}

	uc.metrics.RecordMediaIngestQueued()
	uc.logger.Info("IngestMedia: media id=%d queued for transcoding", item.ID)

	return &Response{MediaID: item.ID, Outcome: OutcomeQueued}, nil
}
