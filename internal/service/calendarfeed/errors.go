package calendarfeed

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля опекуна
	ErrProfileNotFound = errors.New("calendarfeed.service: caregiver profile not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendarfeed.service: internal error")
)
