package dispatch_notification

import "errors"

var (
	// ErrDeliveryFailed возвращается при ошибке канала доставки.
	// Пробрасывается наверх, чтобы очередь повторила задачу с backoff.
	ErrDeliveryFailed = errors.New("dispatch_notification: delivery failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("dispatch_notification: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("dispatch_notification: internal error")
)
