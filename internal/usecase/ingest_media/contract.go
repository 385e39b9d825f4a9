package ingest_media

import (
	"context"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
)

// MediaRepository интерфейс репозитория медиа
type MediaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MediaItem, error)
	MarkStatus(ctx context.Context, id int64, status domain.MediaStatus, errorMessage *string) error
}

// Scanner интерфейс антивирусной проверки
type Scanner interface {
	Enabled() bool
	Scan(ctx context.Context, path string) error
}

// TranscodeEnqueuer интерфейс постановки задачи транскодирования
type TranscodeEnqueuer interface {
	EnqueueTranscode(ctx context.Context, mediaID int64) error
}

// Metrics интерфейс счетчиков медиа-пайплайна
type Metrics interface {
	RecordMediaIngestQueued()
	RecordVirusScanFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
