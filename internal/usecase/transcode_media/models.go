package transcode_media

// Request модель запроса на транскодирование медиа-элемента
type Request struct {
	MediaID int64 // ID медиа-элемента
}

// Outcome исход транскодирования
type Outcome string

const (
	OutcomeReady   Outcome = "ready"   // Рендиции записаны, элемент опубликован
	OutcomeSkipped Outcome = "skipped" // Элемент отсутствует или уже обработан
)

// Response модель ответа
type Response struct {
	MediaID int64
	Outcome Outcome
}
