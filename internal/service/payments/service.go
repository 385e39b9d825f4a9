package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	paymentRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/payment"
)

// Обрабатываемые типы событий Stripe
const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventChargeRefunded  = "charge.refunded"
)

// Service применяет верифицированные события платежного провайдера
// к локальным платежам. Верификация подписи — забота HTTP-границы.
type Service struct {
	paymentRepo PaymentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// ApplyEvent применяет событие к локальному платежу.
// Неизвестные типы событий и события без локального платежа
// игнорируются без ошибки: Stripe шлет больше, чем нам нужно.
func (s *Service) ApplyEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case eventIntentSucceeded:
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}
		return s.applyIntentStatus(ctx, intent.ID, domain.PaymentSucceeded, receiptURL(intent))

	case eventIntentFailed:
		intent, err := parseIntent(event)
		if err != nil {
			return err
		}
		return s.applyIntentStatus(ctx, intent.ID, domain.PaymentCancelled, nil)

	case eventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return fmt.Errorf("%w: failed to parse charge: %v", ErrInternal, err)
		}
		if charge.PaymentIntent == nil {
			s.logger.Warn("Payments: charge %s has no payment intent, ignoring", charge.ID)
			return nil
		}
		return s.applyIntentStatus(ctx, charge.PaymentIntent.ID, domain.PaymentRefunded, nil)

	default:
		s.logger.Info("Payments: ignoring event type %s", event.Type)
		return nil
	}
}

func (s *Service) applyIntentStatus(ctx context.Context, intentID string, status domain.PaymentStatus, receipt *string) error {
	payment, err := s.paymentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// Intent создан вне нашего контура: фиксируем и идем дальше
			s.logger.Warn("Payments: no local payment for intent %s", intentID)
			return nil
		}
		s.logger.Error("Payments: failed to get payment for intent %s: %v", intentID, err)
		return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status, receipt); err != nil {
		s.logger.Error("Payments: failed to update payment id=%d: %v", payment.ID, err)
		return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
	}

	s.logger.Info("Payments: payment id=%d (intent %s) moved to %s", payment.ID, intentID, status)
	return nil
}

func parseIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("%w: failed to parse payment intent: %v", ErrInternal, err)
	}
	return &intent, nil
}

func receiptURL(intent *stripe.PaymentIntent) *string {
	if intent.LatestCharge != nil && intent.LatestCharge.ReceiptURL != "" {
		url := intent.LatestCharge.ReceiptURL
		return &url
	}
	return nil
}
