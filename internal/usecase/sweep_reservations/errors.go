package sweep_reservations

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sweep_reservations: internal error")
)
