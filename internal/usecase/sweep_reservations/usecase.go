package sweep_reservations

import (
	"context"
	"fmt"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// UseCase use case уборки истекших резерваций.
// Каждая резервация обрабатывается в отдельной короткой транзакции:
// удаление защищено условием по expires_at, место возвращается слоту
// только если строку удалил именно этот прогон. Параллельные прогоны
// безопасны, повторный запуск ничего не делает.
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	batchSize       uint64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	batchSize int,
) *UseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		batchSize:       uint64(batchSize),
	}
}

// Execute выполняет один прогон sweeper'а.
// Ошибка возвращается наверх, чтобы очередь повторила задачу.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()

	expired, err := uc.reservationRepo.ListExpired(ctx, now, uc.batchSize)
	if err != nil {
		uc.logger.Error("SweepReservations: failed to list expired reservations: %v", err)
		uc.metrics.RecordSweeperRun(resultFailure)
		return nil, fmt.Errorf("%w: failed to list expired reservations: %v", ErrInternal, err)
	}

	result := &Result{Scanned: len(expired)}

	for _, reservation := range expired {
		released := false
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			deleted, err := uc.reservationRepo.DeleteExpired(txCtx, reservation.ID, now)
			if err != nil {
				return fmt.Errorf("delete reservation id=%d: %w", reservation.ID, err)
			}

			// Кто-то другой уже убрал строку: место уже возвращено,
			// второй раз не возвращаем
			if !deleted {
				return nil
			}

			if err := uc.slotRepo.ReleaseCapacity(txCtx, reservation.SlotID); err != nil {
				return fmt.Errorf("release capacity for slot id=%d: %w", reservation.SlotID, err)
			}

			released = true
			return nil
		})
		if err != nil {
			uc.logger.Error("SweepReservations: %v", err)
			uc.metrics.RecordSweeperRun(resultFailure)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// Счетчик растет только после фиксации транзакции
		if released {
			result.Released++
			uc.metrics.RecordReservationSwept()
		}
	}

	if result.Released > 0 {
		uc.logger.Info("SweepReservations: released %d of %d expired reservations",
			result.Released, result.Scanned)
	}
	uc.metrics.RecordSweeperRun(resultSuccess)

	return result, nil
}
