package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidStatus возвращается при неизвестном токене статуса
	ErrInvalidStatus = errors.New("update_booking_status: unknown status")

	// ErrSameStatus возвращается, когда бронирование уже в целевом статусе.
	// Информационный исход: ничего не записывается.
	ErrSameStatus = errors.New("update_booking_status: booking already in this status")

	// ErrTransitionNotAllowed возвращается при недопустимом переходе
	ErrTransitionNotAllowed = errors.New("update_booking_status: transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
