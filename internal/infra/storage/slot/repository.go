package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий слотов бронирования.
// Владеет счетчиком available_count: все изменения проходят только
// через атомарные ReserveCapacity / ReleaseCapacity.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_id", "facility_id", "start_at", "end_at",
		"capacity", "available_count", "lock_version", "created_at", "updated_at",
	).
		From("booking_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BookingSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ServiceID,
		&s.FacilityID,
		&s.StartAt,
		&s.EndAt,
		&s.Capacity,
		&s.AvailableCount,
		&s.LockVersion,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ReserveCapacity атомарно занимает одно место в слоте.
// Проверка и декремент выполняются одним UPDATE: два конкурентных
// вызова не могут увести available_count ниже нуля.
// Возвращает ErrNoCapacity, если свободных мест не осталось.
func (r *Repository) ReserveCapacity(ctx context.Context, slotID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("available_count", squirrel.Expr("available_count - 1")).
		Set("lock_version", squirrel.Expr("lock_version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Gt{"available_count": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReserveCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо слота нет, либо мест не осталось — различаем для вызывающего
		if _, err := r.GetByID(ctx, slotID); err != nil {
			return err
		}
		return ErrNoCapacity
	}

	return nil
}

// ReleaseCapacity атомарно возвращает одно место в слот.
// Инкремент ограничен сверху capacity, чтобы повторный release
// не раздул счетчик.
func (r *Repository) ReleaseCapacity(ctx context.Context, slotID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("available_count", squirrel.Expr("LEAST(capacity, available_count + 1)")).
		Set("lock_version", squirrel.Expr("lock_version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListUpcoming получает ближайшие слоты начиная с указанного момента
func (r *Repository) ListUpcoming(ctx context.Context, from time.Time, limit uint64) ([]*domain.BookingSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "service_id", "facility_id", "start_at", "end_at",
		"capacity", "available_count", "lock_version", "created_at", "updated_at",
	).
		From("booking_slots").
		Where(squirrel.GtOrEq{"start_at": from}).
		OrderBy("start_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.BookingSlot, 0)
	for rows.Next() {
		var s domain.BookingSlot
		err := rows.Scan(
			&s.ID,
			&s.ServiceID,
			&s.FacilityID,
			&s.StartAt,
			&s.EndAt,
			&s.Capacity,
			&s.AvailableCount,
			&s.LockVersion,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
