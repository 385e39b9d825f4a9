package create_deposit

// Request модель запроса на депозитный платеж
type Request struct {
	BookingID int64 // ID бронирования
}

// Response модель ответа с данными для оплаты на клиенте
type Response struct {
	PaymentID    int64  // ID платежа
	IntentID     string // ID payment intent'а
	ClientSecret string // client_secret для подтверждения на клиенте
	AmountCents  int64  // Сумма депозита
	Currency     string // Валюта
	Reused       bool   // true, если возвращен уже существующий активный intent
}
