package stripeclient

import "errors"

var (
	// ErrIntentNotFound возвращается, когда payment intent не найден
	ErrIntentNotFound = errors.New("stripeclient: payment intent not found")

	// ErrInternal возвращается при ошибках Stripe API
	ErrInternal = errors.New("stripeclient: internal error")
)
