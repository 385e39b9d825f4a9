package transcode_media

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// MediaRepository интерфейс репозитория медиа
type MediaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MediaItem, error)
	MarkStatus(ctx context.Context, id int64, status domain.MediaStatus, errorMessage *string) error
	StoreConversions(ctx context.Context, id int64, conversions *domain.Conversions) error
}

// Transcoder интерфейс получения производных файлов
type Transcoder interface {
	Transcode(ctx context.Context, item *domain.MediaItem, sourcePath string) (*domain.Conversions, error)
}

// Metrics интерфейс счетчиков транскодирования
type Metrics interface {
	RecordTranscodeStart()
	RecordTranscodeSuccess()
	RecordTranscodeFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
