package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий бронирований и их журнала статусов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается только внутри транзакции вместе с резервированием места
// в слоте (см. usecase create_booking).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(booking.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"slot_id",
			"client_id",
			"guest_email",
			"status",
			"created_by",
			"created_via",
			"uuid",
			"metadata",
		).
		Values(
			booking.SlotID,
			booking.ClientID,
			booking.GuestEmail,
			booking.Status,
			booking.CreatedBy,
			booking.CreatedVia,
			booking.UUID,
			metadata,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUUID получает бронирование по внешнему UUID
func (r *Repository) GetByUUID(ctx context.Context, uuid string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"uuid": uuid})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectBookings().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// ListByClientID получает бронирования клиента (новые первыми)
func (r *Repository) ListByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByStatus получает бронирования по статусу для админского inbox.
// status == nil возвращает все бронирования.
func (r *Repository) ListByStatus(ctx context.Context, status *domain.BookingStatus, limit, offset uint64) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().OrderBy("created_at DESC")
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit).Offset(offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByStatus возвращает количество бронирований в каждом статусе
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status domain.BookingStatus
		var total int64
		if err := rows.Scan(&status, &total); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateStatus обновляет статус бронирования.
// cancelledAt проставляется только при переходе в cancelled.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, cancelledAt *time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if cancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *cancelledAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AppendHistory добавляет запись в append-only журнал переходов.
// Журнал никогда не изменяется и не удаляется.
func (r *Repository) AppendHistory(ctx context.Context, entry *domain.BookingStatusHistory) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	var fromStatus *string
	if entry.FromStatus != "" {
		s := string(entry.FromStatus)
		fromStatus = &s
	}

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("booking_id", "from_status", "to_status", "changed_by", "changed_at").
		Values(entry.BookingID, fromStatus, entry.ToStatus, entry.ChangedBy, entry.ChangedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AppendHistory - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListHistory получает журнал переходов бронирования в порядке записи
func (r *Repository) ListHistory(ctx context.Context, bookingID int64) ([]*domain.BookingStatusHistory, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "from_status", "to_status", "changed_by", "changed_at").
		From("booking_status_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BookingStatusHistory, 0)
	for rows.Next() {
		var entry domain.BookingStatusHistory
		var fromStatus sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&fromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHistory - scan row: %v", ErrScanRow, err)
		}
		if fromStatus.Valid {
			entry.FromStatus = domain.BookingStatus(fromStatus.String)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHistory - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func (r *Repository) selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"slot_id",
		"client_id",
		"guest_email",
		"status",
		"created_by",
		"created_via",
		"uuid",
		"metadata",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var metadata []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SlotID,
			&booking.ClientID,
			&booking.GuestEmail,
			&booking.Status,
			&booking.CreatedBy,
			&booking.CreatedVia,
			&booking.UUID,
			&metadata,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &booking.Metadata); err != nil {
				return nil, fmt.Errorf("%w: scanBookings - unmarshal metadata: %v", ErrScanRow, err)
			}
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
