package domain

import "time"

// PaymentStatus статус депозитного платежа
type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentRequiresAction PaymentStatus = "requires_action"
	PaymentSucceeded      PaymentStatus = "succeeded"
	PaymentCancelled      PaymentStatus = "cancelled"
	PaymentRefunded       PaymentStatus = "refunded"
)

// ActivePaymentStatuses статусы, при которых intent еще "живой".
// У бронирования может быть не более одного активного intent'а.
var ActivePaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentRequiresAction,
}

// Payment депозитный платеж, привязанный к бронированию
// через внешний payment intent.
type Payment struct {
	ID                    int64
	BookingID             int64
	StripePaymentIntentID string
	Status                PaymentStatus
	AmountCents           int64
	Currency              string
	ReceiptURL            *string
	Metadata              map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the payment still represents a live intent
func (p *Payment) IsActive() bool {
	return p.Status == PaymentPending || p.Status == PaymentRequiresAction
}
