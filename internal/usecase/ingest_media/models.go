package ingest_media

// Request модель запроса на обработку загруженного медиа-файла
type Request struct {
	MediaID int64 // ID медиа-элемента
}

// Outcome исход обработки
type Outcome string

const (
	OutcomeQueued  Outcome = "queued"  // Проверен, поставлен на транскодирование
	OutcomeSkipped Outcome = "skipped" // Элемент отсутствует или уже обработан
)

// Response модель ответа
type Response struct {
	MediaID int64
	Outcome Outcome
}
