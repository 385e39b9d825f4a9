package stripe_webhook

import (
	"context"

	"github.com/stripe/stripe-go/v76"
)

type PaymentService interface {
	ApplyEvent(ctx context.Context, event stripe.Event) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
