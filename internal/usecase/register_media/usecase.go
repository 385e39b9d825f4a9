package register_media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/ptr"
)

// UseCase use case регистрации загруженного медиа-файла: запись
// в статусе pending и постановка задачи приемки в очередь.
type UseCase struct {
	mediaRepo MediaRepository
	enqueuer  IngestEnqueuer
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(mediaRepo MediaRepository, enqueuer IngestEnqueuer, logger Logger) *UseCase {
	return &UseCase{
		mediaRepo: mediaRepo,
		enqueuer:  enqueuer,
		logger:    logger,
	}
}

// Execute регистрирует медиа-файл и ставит его на обработку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	item, err := uc.mediaRepo.Create(ctx, &domain.MediaItem{
		UUID:       uuid.NewString(),
		OwnerKind:  domain.MediaOwnerKind(req.OwnerKind),
		OwnerID:    req.OwnerID,
		Title:      req.Title,
		FileURL:    req.FileURL,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		Status:     domain.MediaPending,
		UploadedBy: req.UploadedBy,
		UploadedAt: ptr.Ptr(now),
	})
	if err != nil {
		uc.logger.Error("RegisterMedia: failed to create media item: %v", err)
		return nil, fmt.Errorf("%w: failed to create media item: %v", ErrInternal, err)
	}

	if err := uc.enqueuer.EnqueueIngest(ctx, item.ID); err != nil {
		// Запись остается в pending: переобход подберет ее позже
		uc.logger.Error("RegisterMedia: failed to enqueue ingest for media id=%d: %v", item.ID, err)
		return nil, fmt.Errorf("%w: failed to enqueue ingest: %v", ErrInternal, err)
	}

	uc.logger.Info("RegisterMedia: media id=%d uuid=%s registered", item.ID, item.UUID)

	return &Response{
		ID:        item.ID,
		UUID:      item.UUID,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
	}, nil
}

func validateRequest(req *Request) error {
	if !domain.ValidOwnerKind(req.OwnerKind) {
		return fmt.Errorf("%w: unknown owner kind %q", ErrInvalidInput, req.OwnerKind)
	}
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.FileURL == "" {
		return fmt.Errorf("%w: fileURL is required", ErrInvalidInput)
	}
	if req.SizeBytes < 0 {
		return fmt.Errorf("%w: sizeBytes must not be negative", ErrInvalidInput)
	}
	return nil
}
