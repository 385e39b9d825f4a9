package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий временных резерваций слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает резервацию с временем истечения.
// Вызывается в одной транзакции с уменьшением available_count слота.
func (r *Repository) Create(ctx context.Context, reservation *domain.SlotReservation) (*domain.SlotReservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_reservations").
		Columns("slot_id", "reserved_by_user_id", "reserved_for_client_id", "guest_email", "expires_at").
		Values(
			reservation.SlotID,
			reservation.ReservedByUserID,
			reservation.ReservedForClientID,
			reservation.GuestEmail,
			reservation.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает резервацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotReservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectReservations().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	return reservations[0], nil
}

// ListExpired получает резервации с истекшим сроком (старые первыми)
func (r *Repository) ListExpired(ctx context.Context, now time.Time, limit uint64) ([]*domain.SlotReservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectReservations().
		Where(squirrel.LtOrEq{"expires_at": now}).
		OrderBy("expires_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// DeleteExpired удаляет резервацию, если она все еще существует и истекла.
// Возвращает true если строка была удалена именно этим вызовом — только
// в этом случае вызывающая сторона возвращает место слоту. Условие по
// expires_at защищает от гонки с конкурирующим воркером.
func (r *Repository) DeleteExpired(ctx context.Context, id int64, now time.Time) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Delete удаляет резервацию по ID (при конвертации резервации в бронирование)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) selectReservations() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"slot_id",
		"reserved_by_user_id",
		"reserved_for_client_id",
		"guest_email",
		"expires_at",
		"created_at",
		"updated_at",
	).From("slot_reservations")
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.SlotReservation, error) {
	reservations := make([]*domain.SlotReservation, 0)

	for rows.Next() {
		var reservation domain.SlotReservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.SlotID,
			&reservation.ReservedByUserID,
			&reservation.ReservedForClientID,
			&reservation.GuestEmail,
			&reservation.ExpiresAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
