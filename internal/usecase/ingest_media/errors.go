package ingest_media

import "errors"

var (
	// ErrScanFailed возвращается, когда антивирусная проверка не прошла.
	// Пробрасывается наверх для retry с backoff.
	ErrScanFailed = errors.New("ingest_media: virus scan failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("ingest_media: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("ingest_media: internal error")
)
