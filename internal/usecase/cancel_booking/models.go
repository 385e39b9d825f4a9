package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64  // ID бронирования
	CancelledBy *int64 // ID пользователя, отменившего бронирование
}

// Response модель ответа об отмене
type Response struct {
	ID          int64     // ID бронирования
	FromStatus  string    // Статус до отмены
	Status      string    // Всегда cancelled
	CancelledAt time.Time // Время отмены
}
