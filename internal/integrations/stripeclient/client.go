package stripeclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Intent результат создания или чтения payment intent'а
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
	ReceiptURL   *string
}

// Client клиент для работы со Stripe
type Client struct {
	api *client.API
	log Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(secretKey string, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{
		api: api,
		log: log,
	}
}

// CreateIntent создает payment intent для депозита бронирования
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("Stripe: failed to create payment intent: %v", err)
		return nil, fmt.Errorf("%w: failed to create payment intent: %v", ErrInternal, err)
	}

	c.log.Info("Stripe: created payment intent %s for %d %s", intent.ID, amountCents, currency)
	return toIntent(intent), nil
}

// GetIntent получает payment intent по ID
func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}

	intent, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrIntentNotFound
		}
		c.log.Error("Stripe: failed to get payment intent %s: %v", intentID, err)
		return nil, fmt.Errorf("%w: failed to get payment intent: %v", ErrInternal, err)
	}

	return toIntent(intent), nil
}

func toIntent(intent *stripe.PaymentIntent) *Intent {
	result := &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
		Currency:     string(intent.Currency),
	}
	if intent.LatestCharge != nil && intent.LatestCharge.ReceiptURL != "" {
		receiptURL := intent.LatestCharge.ReceiptURL
		result.ReceiptURL = &receiptURL
	}
	return result
}
