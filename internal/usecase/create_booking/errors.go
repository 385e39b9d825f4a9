package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда в слоте не осталось мест
	ErrSlotUnavailable = errors.New("create_booking: slot has no remaining capacity")

	// ErrSlotInPast возвращается при попытке бронирования прошедшего слота
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrClientNotFound возвращается, когда указанный клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
