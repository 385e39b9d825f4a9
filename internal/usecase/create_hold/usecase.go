package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	slotRepo "github.com/nordeim/Elderly-Care-Center/internal/infra/storage/slot"
)

// UseCase use case для временного удержания места в слоте.
// Удержание живет до expires_at; истекшие резервации возвращает
// слоту sweeper.
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	holdTTL         time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
	holdTTLMinutes int,
) *UseCase {
	if holdTTLMinutes <= 0 {
		holdTTLMinutes = 15
	}
	return &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		holdTTL:         time.Duration(holdTTLMinutes) * time.Minute,
	}
}

// Execute резервирует место и создает запись удержания в одной
// сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: slot=%d", req.SlotID)

	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.ReservedByUserID == nil && req.ReservedForClientID == nil && req.GuestEmail == nil {
		return nil, fmt.Errorf("%w: hold owner is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	expiresAt := now.Add(uc.holdTTL)

	var result *domain.SlotReservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateHold: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateHold: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.StartAt.After(now) {
			uc.logger.Warn("CreateHold: slot id=%d already started at %s", slot.ID, slot.StartAt)
			return ErrSlotInPast
		}

		if err := uc.slotRepo.ReserveCapacity(txCtx, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrNoCapacity) {
				uc.logger.Warn("CreateHold: slot id=%d is full", req.SlotID)
				return ErrSlotUnavailable
			}
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateHold: failed to reserve capacity for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve capacity: %v", ErrInternal, err)
		}

		reservation := &domain.SlotReservation{
			SlotID:              req.SlotID,
			ReservedByUserID:    req.ReservedByUserID,
			ReservedForClientID: req.ReservedForClientID,
			GuestEmail:          req.GuestEmail,
			ExpiresAt:           expiresAt,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateHold: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: reservation id=%d holds slot id=%d until %s",
		result.ID, result.SlotID, result.ExpiresAt)

	return &Response{
		ID:        result.ID,
		SlotID:    result.SlotID,
		ExpiresAt: result.ExpiresAt,
	}, nil
}
