package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	bookingRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование.
// Смена статуса, запись журнала и возврат места слоту выполняются
// в одной транзакции: место не может "потеряться" между шагами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.Status == domain.StatusCancelled {
			uc.logger.Info("CancelBooking: booking id=%d already cancelled", booking.ID)
			return ErrAlreadyCancelled
		}

		if !domain.CanTransition(booking.Status, domain.StatusCancelled) {
			uc.logger.Warn("CancelBooking: booking id=%d in status %s cannot be cancelled",
				booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCancelled, &now); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		history := &domain.BookingStatusHistory{
			BookingID:  booking.ID,
			FromStatus: booking.Status,
			ToStatus:   domain.StatusCancelled,
			ChangedBy:  req.CancelledBy,
			ChangedAt:  now,
		}
		if err := uc.bookingRepo.AppendHistory(txCtx, history); err != nil {
			uc.logger.Error("CancelBooking: failed to append history for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to append history: %v", ErrInternal, err)
		}

		// Место возвращается только если бронирование его удерживало
		if booking.HoldsCapacity() {
			if err := uc.slotRepo.ReleaseCapacity(txCtx, booking.SlotID); err != nil {
				uc.logger.Error("CancelBooking: failed to release capacity for slot id=%d: %v",
					booking.SlotID, err)
				return fmt.Errorf("%w: failed to release capacity: %v", ErrInternal, err)
			}
		}

		result = &Response{
			ID:          booking.ID,
			FromStatus:  string(booking.Status),
			Status:      string(domain.StatusCancelled),
			CancelledAt: now,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.RecordStatusChange(result.FromStatus, result.Status)
	uc.logger.Info("CancelBooking: booking id=%d cancelled (was %s)", result.ID, result.FromStatus)

	return result, nil
}
