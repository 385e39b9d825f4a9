package update_booking_status

import "time"

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64  // ID бронирования
	Status    string // Целевой статус (строка из API)
	ChangedBy *int64 // ID пользователя, инициировавшего переход
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID         int64      // ID бронирования
	FromStatus string     // Статус до перехода
	Status     string     // Статус после перехода
	ChangedAt  time.Time  // Время перехода
	CancelledAt *time.Time // Время отмены (только для cancelled)
}
