package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий уведомлений о бронированиях
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запланированное уведомление в статусе pending
func (r *Repository) Create(ctx context.Context, notification *domain.BookingNotification) (*domain.BookingNotification, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	meta, err := json.Marshal(notification.Meta)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal meta: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("booking_notifications").
		Columns("booking_id", "caregiver_profile_id", "channel", "status", "scheduled_for", "meta").
		Values(
			notification.BookingID,
			notification.CaregiverProfileID,
			notification.Channel,
			notification.Status,
			notification.ScheduledFor,
			meta,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&notification.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	notification.CreatedAt = createdAt.Time
	notification.UpdatedAt = updatedAt.Time

	return notification, nil
}

// GetByID получает уведомление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingNotification, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectNotifications().
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

	notifications, err := r.scanNotifications(rows)
	if err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, ErrNotificationNotFound
	}
	return notifications[0], nil
}

// ListDue получает pending уведомления, у которых наступило время отправки
func (r *Repository) ListDue(ctx context.Context, now time.Time, limit uint64) ([]*domain.BookingNotification, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectNotifications().
		Where(squirrel.Eq{"status": domain.NotificationPending}).
		Where(squirrel.LtOrEq{"scheduled_for": now}).
		OrderBy("scheduled_for ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanNotifications(rows)
}

// ListByBookingID получает уведомления бронирования
func (r *Repository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.BookingNotification, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectNotifications().
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("scheduled_for ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanNotifications(rows)
}

// UpdateStatus обновляет статус уведомления и записывает meta
// (причина skip/fail, текст ошибки, время отправки)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.NotificationStatus, meta map[string]string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - marshal meta: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("booking_notifications").
		Set("status", status).
		Set("meta", metaJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
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
		return ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) selectNotifications() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"booking_id",
		"caregiver_profile_id",
		"channel",
		"status",
		"scheduled_for",
		"meta",
		"created_at",
		"updated_at",
	).From("booking_notifications")
}

func (r *Repository) scanNotifications(rows *sql.Rows) ([]*domain.BookingNotification, error) {
	notifications := make([]*domain.BookingNotification, 0)

	for rows.Next() {
		var notification domain.BookingNotification
		var meta []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&notification.ID,
			&notification.BookingID,
			&notification.CaregiverProfileID,
			&notification.Channel,
			&notification.Status,
			&notification.ScheduledFor,
			&meta,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanNotifications - scan row: %v", ErrScanRow, err)
		}

		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &notification.Meta); err != nil {
				return nil, fmt.Errorf("%w: scanNotifications - unmarshal meta: %v", ErrScanRow, err)
			}
		}

		notification.CreatedAt = createdAt.Time
		notification.UpdatedAt = updatedAt.Time

		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanNotifications - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}
