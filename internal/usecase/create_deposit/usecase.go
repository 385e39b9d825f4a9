package create_deposit

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
	catalogRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/catalog"
	paymentRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/payment"
)

// UseCase use case депозитного платежа за бронирование.
// Инвариант: у бронирования не более одного активного intent'а —
// существующий pending/requires_action платеж переиспользуется.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	catalogRepo  CatalogRepository
	paymentRepo  PaymentRepository
	stripe       StripeClient
	logger       Logger
	currency     string
	defaultCents int64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	catalogRepo CatalogRepository,
	paymentRepo PaymentRepository,
	stripe StripeClient,
	logger Logger,
	currency string,
	defaultDepositCents int64,
) *UseCase {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if defaultDepositCents <= 0 {
		defaultDepositCents = domain.DefaultDepositCents
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		catalogRepo:  catalogRepo,
		paymentRepo:  paymentRepo,
		stripe:       stripe,
		logger:       logger,
		currency:     currency,
		defaultCents: defaultDepositCents,
	}
}

// Execute возвращает данные для оплаты депозита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateDeposit: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateDeposit: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreateDeposit: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsTerminal() {
		uc.logger.Warn("CreateDeposit: booking id=%d in terminal status %s", booking.ID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrBookingNotPayable, booking.Status)
	}

	// 1. Переиспользуем живой intent, если он есть
	existing, err := uc.paymentRepo.GetActiveByBookingID(ctx, booking.ID)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		uc.logger.Error("CreateDeposit: failed to get active payment for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get active payment: %v", ErrInternal, err)
	}
	if existing != nil {
		intent, err := uc.stripe.GetIntent(ctx, existing.StripePaymentIntentID)
		if err != nil {
			uc.logger.Error("CreateDeposit: failed to retrieve intent %s: %v",
				existing.StripePaymentIntentID, err)
			return nil, fmt.Errorf("%w: failed to retrieve intent: %v", ErrInternal, err)
		}
		uc.logger.Info("CreateDeposit: reusing intent %s for booking id=%d", intent.ID, booking.ID)
		return &Response{
			PaymentID:    existing.ID,
			IntentID:     intent.ID,
			ClientSecret: intent.ClientSecret,
			AmountCents:  existing.AmountCents,
			Currency:     existing.Currency,
			Reused:       true,
		}, nil
	}

	// 2. Размер депозита: из услуги либо значение по умолчанию
	amountCents, err := uc.depositAmount(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 3. Создаем intent и сохраняем платеж
	intent, err := uc.stripe.CreateIntent(ctx, amountCents, uc.currency, map[string]string{
		"booking_id":   strconv.FormatInt(booking.ID, 10),
		"booking_uuid": booking.UUID,
	})
	if err != nil {
		uc.logger.Error("CreateDeposit: failed to create intent for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create intent: %v", ErrInternal, err)
	}

	payment := &domain.Payment{
		BookingID:             booking.ID,
		StripePaymentIntentID: intent.ID,
		Status:                domain.PaymentPending,
		AmountCents:           amountCents,
		Currency:              uc.currency,
	}

	created, err := uc.paymentRepo.Create(ctx, payment)
	if err != nil {
		uc.logger.Error("CreateDeposit: failed to persist payment for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to persist payment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateDeposit: payment id=%d intent=%s created for booking id=%d",
		created.ID, intent.ID, booking.ID)

	return &Response{
		PaymentID:    created.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  amountCents,
		Currency:     uc.currency,
	}, nil
}

// depositAmount определяет размер депозита для бронирования
func (uc *UseCase) depositAmount(ctx context.Context, booking *domain.Booking) (int64, error) {
	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		uc.logger.Error("CreateDeposit: failed to get slot id=%d: %v", booking.SlotID, err)
		return 0, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetServiceByID(ctx, slot.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			// Услуга могла быть снята с публикации: берем депозит по умолчанию
			uc.logger.Warn("CreateDeposit: service id=%d not found, using default deposit", slot.ServiceID)
			return uc.defaultCents, nil
		}
		uc.logger.Error("CreateDeposit: failed to get service id=%d: %v", slot.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DepositCents != nil && *service.DepositCents > 0 {
		return *service.DepositCents, nil
	}
	return uc.defaultCents, nil
}
