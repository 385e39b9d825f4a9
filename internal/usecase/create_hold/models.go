package create_hold

import "time"

// Request модель запроса на временное удержание места в слоте
type Request struct {
	SlotID              int64   // ID слота
	ReservedByUserID    *int64  // ID учетной записи (если есть)
	ReservedForClientID *int64  // ID клиента (если известен)
	GuestEmail          *string // Email гостя
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID        int64     // ID резервации
	SlotID    int64     // ID слота
	ExpiresAt time.Time // Момент истечения удержания
}
