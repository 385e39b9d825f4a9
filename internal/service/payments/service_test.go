package payments

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	paymentRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/payment"
)

type statusUpdate struct {
	id      int64
	status  domain.PaymentStatus
	receipt *string
}

type fakePaymentRepo struct {
	payments map[string]*domain.Payment
	updates  []statusUpdate
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*domain.Payment)}
}

func (r *fakePaymentRepo) GetByIntentID(_ context.Context, intentID string) (*domain.Payment, error) {
	payment, ok := r.payments[intentID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus, receiptURL *string) error {
	r.updates = append(r.updates, statusUpdate{id: id, status: status, receipt: receiptURL})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func eventWithPayload(t *testing.T, eventType string, payload interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestApplyEvent_IntentSucceeded(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.payments["pi_123"] = &domain.Payment{ID: 7, StripePaymentIntentID: "pi_123", Status: domain.PaymentPending}
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "payment_intent.succeeded", map[string]interface{}{
		"id": "pi_123",
		"latest_charge": map[string]interface{}{
			"id":          "ch_1",
			"receipt_url": "https://pay.stripe.com/receipts/abc",
		},
	})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, int64(7), repo.updates[0].id)
	assert.Equal(t, domain.PaymentSucceeded, repo.updates[0].status)
	require.NotNil(t, repo.updates[0].receipt)
	assert.Equal(t, "https://pay.stripe.com/receipts/abc", *repo.updates[0].receipt)
}

func TestApplyEvent_IntentSucceededWithoutReceipt(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.payments["pi_123"] = &domain.Payment{ID: 7, StripePaymentIntentID: "pi_123", Status: domain.PaymentPending}
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "payment_intent.succeeded", map[string]interface{}{"id": "pi_123"})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Nil(t, repo.updates[0].receipt)
}

func TestApplyEvent_IntentFailed(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.payments["pi_456"] = &domain.Payment{ID: 9, StripePaymentIntentID: "pi_456", Status: domain.PaymentRequiresAction}
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "payment_intent.payment_failed", map[string]interface{}{"id": "pi_456"})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.PaymentCancelled, repo.updates[0].status)
	assert.Nil(t, repo.updates[0].receipt)
}

func TestApplyEvent_ChargeRefunded(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.payments["pi_789"] = &domain.Payment{ID: 11, StripePaymentIntentID: "pi_789", Status: domain.PaymentSucceeded}
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "charge.refunded", map[string]interface{}{
		"id":             "ch_2",
		"payment_intent": map[string]interface{}{"id": "pi_789"},
	})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.PaymentRefunded, repo.updates[0].status)
}

func TestApplyEvent_ChargeWithoutIntentIgnored(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "charge.refunded", map[string]interface{}{"id": "ch_3"})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Empty(t, repo.updates)
}

func TestApplyEvent_UnknownEventTypeIgnored(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "customer.created", map[string]interface{}{"id": "cus_1"})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Empty(t, repo.updates)
}

func TestApplyEvent_NoLocalPaymentIgnored(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo, nopLogger{})

	event := eventWithPayload(t, "payment_intent.succeeded", map[string]interface{}{"id": "pi_unknown"})

	err := service.ApplyEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Empty(t, repo.updates)
}

func TestApplyEvent_MalformedPayload(t *testing.T) {
	repo := newFakePaymentRepo()
	service := NewService(repo, nopLogger{})

	event := stripe.Event{
		Type: "payment_intent.succeeded",
		Data: &stripe.EventData{Raw: json.RawMessage(`{broken`)},
	}

	err := service.ApplyEvent(context.Background(), event)

	assert.ErrorIs(t, err, ErrInternal)
}
