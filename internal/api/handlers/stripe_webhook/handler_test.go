package stripe_webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

const testSigningSecret = "whsec_test_secret"

type fakePaymentService struct {
	applied []stripe.Event
	err     error
}

func (s *fakePaymentService) ApplyEvent(_ context.Context, event stripe.Event) error {
	s.applied = append(s.applied, event)
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// signPayload собирает заголовок Stripe-Signature так же, как его
// собирает Stripe: HMAC-SHA256 от "<timestamp>.<payload>"
func signPayload(payload string, secret string, at time.Time) string {
	timestamp := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + payload))
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func webhookRequest(payload, signature string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(payload))
	if signature != "" {
		r.Header.Set("Stripe-Signature", signature)
	}
	return r
}

func TestHandle_ValidSignature(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	payload := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`
	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(payload, signPayload(payload, testSigningSecret, time.Now())))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, service.applied, 1)
	assert.Equal(t, "evt_1", service.applied[0].ID)
	assert.Equal(t, stripe.EventType("payment_intent.succeeded"), service.applied[0].Type)
}

func TestHandle_MissingSignature(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(`{"id":"evt_1"}`, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.applied)
}

func TestHandle_WrongSecret(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	payload := `{"id":"evt_1"}`
	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(payload, signPayload(payload, "whsec_other", time.Now())))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.applied)
}

func TestHandle_TamperedPayload(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	signature := signPayload(`{"id":"evt_1"}`, testSigningSecret, time.Now())
	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(`{"id":"evt_2"}`, signature))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.applied)
}

func TestHandle_StaleTimestamp(t *testing.T) {
	service := &fakePaymentService{}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	payload := `{"id":"evt_1"}`
	signature := signPayload(payload, testSigningSecret, time.Now().Add(-time.Hour))
	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(payload, signature))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.applied)
}

func TestHandle_ServiceFailure(t *testing.T) {
	service := &fakePaymentService{err: errors.New("db down")}
	handler := NewHandler(service, testSigningSecret, nopLogger{})

	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`
	w := httptest.NewRecorder()
	handler.Handle(w, webhookRequest(payload, signPayload(payload, testSigningSecret, time.Now())))

	// Не-2xx ответ, чтобы Stripe повторил доставку
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, service.applied, 1)
}
