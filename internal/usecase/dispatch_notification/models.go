package dispatch_notification

import "time"

// Request модель запроса на доставку уведомления
type Request struct {
	NotificationID int64 // ID уведомления
}

// Outcome исход обработки уведомления
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	OutcomeNoop    Outcome = "noop" // терминальный статус или отсутствующая запись
)

// Response модель ответа об исходе доставки
type Response struct {
	NotificationID int64
	Outcome        Outcome
	Reason         string // Причина skip/fail (пусто для sent)
}

// Message собранное к доставке напоминание
type Message struct {
	To      string    // Email или телефон получателя
	Name    string    // Имя получателя
	Subject string    // Тема (только email)
	Body    string    // Текст напоминания
	StartAt time.Time // Начало визита
}
