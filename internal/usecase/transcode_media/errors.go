package transcode_media

import "errors"

var (
	// ErrTranscodeFailed возвращается при ошибке ffmpeg.
	// Пробрасывается наверх для retry с backoff.
	ErrTranscodeFailed = errors.New("transcode_media: transcoding failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transcode_media: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transcode_media: internal error")
)
