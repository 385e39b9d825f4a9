package create_booking

import (
	"time"
)

// ClientInput данные нового клиента при первом обращении
type ClientInput struct {
	FirstName      string  // Имя
	LastName       string  // Фамилия
	Email          string  // Email (ключ дедупликации)
	Phone          *string // Телефон (опционально)
	Language       string  // Предпочитаемый язык (опционально)
	ConsentVersion *string // Версия принятого соглашения (опционально)
}

// Request модель запроса на создание бронирования.
// Заполняется ровно одно из GuestEmail / Client / ClientID.
type Request struct {
	SlotID        int64        // ID слота
	GuestEmail    *string      // Email гостя без учетной записи
	Client        *ClientInput // Данные нового клиента
	ClientID      *int64       // ID существующего клиента
	CaregiverName *string      // Имя сопровождающего (опционально)
	Notes         *string      // Дополнительные заметки (опционально)
	CreatedBy     *int64       // ID пользователя, создавшего бронирование
	CreatedVia    string       // Канал создания (web/admin/phone/api)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64   // ID созданного бронирования
	UUID       string  // Внешний идентификатор
	SlotID     int64   // ID слота
	ClientID   *int64  // ID клиента (nil для гостя)
	GuestEmail *string // Email гостя
	Status     string  // Статус (всегда pending)

	CreatedAt time.Time // Время создания
}
