package register_media

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// MediaRepository интерфейс репозитория медиа
type MediaRepository interface {
	Create(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error)
}

// IngestEnqueuer интерфейс постановки задачи приемки
type IngestEnqueuer interface {
	EnqueueIngest(ctx context.Context, mediaID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
