package create_deposit

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_deposit: booking not found")

	// ErrBookingNotPayable возвращается для бронирований в терминальном статусе
	ErrBookingNotPayable = errors.New("create_deposit: booking is not payable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_deposit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_deposit: internal error")
)
