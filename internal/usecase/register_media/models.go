package register_media

import "time"

// Request модель запроса на регистрацию загруженного медиа-файла
type Request struct {
	OwnerKind  string // Тип владельца (facility/service/staff_member/testimonial)
	OwnerID    int64  // ID владельца
	Title      string // Заголовок
	FileURL    string // Путь к исходному файлу
	MimeType   string // MIME тип исходника
	SizeBytes  int64  // Размер исходника
	UploadedBy *int64 // ID загрузившего пользователя
}

// Response модель ответа с зарегистрированным медиа
type Response struct {
	ID        int64     // ID медиа-элемента
	UUID      string    // Внешний идентификатор
	Status    string    // Статус (всегда pending)
	CreatedAt time.Time // Время регистрации
}
