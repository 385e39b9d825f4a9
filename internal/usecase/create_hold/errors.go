package create_hold

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_hold: slot not found")

	// ErrSlotUnavailable возвращается, когда в слоте не осталось мест
	ErrSlotUnavailable = errors.New("create_hold: slot has no remaining capacity")

	// ErrSlotInPast возвращается при попытке удержания прошедшего слота
	ErrSlotInPast = errors.New("create_hold: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
