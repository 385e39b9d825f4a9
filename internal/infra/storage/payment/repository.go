package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий депозитных платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платеж, созданный вместе с payment intent
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(payment.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "stripe_payment_intent_id", "status", "amount_cents", "currency", "receipt_url", "metadata").
		Values(
			payment.BookingID,
			payment.StripePaymentIntentID,
			payment.Status,
			payment.AmountCents,
			payment.Currency,
			payment.ReceiptURL,
			metadata,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByIntentID получает платеж по внешнему ID payment intent'а
func (r *Repository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"stripe_payment_intent_id": intentID})
}

// GetActiveByBookingID получает активный (pending или requires_action)
// платеж бронирования. Инвариант: не более одного активного intent'а.
func (r *Repository) GetActiveByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{
		"booking_id": bookingID,
		"status":     domain.ActivePaymentStatuses,
	})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectPayments().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments, err := r.scanPayments(rows)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, ErrPaymentNotFound
	}
	return payments[0], nil
}

// UpdateStatus обновляет статус платежа и receipt_url
// по событию платежного провайдера
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, receiptURL *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if receiptURL != nil {
		updateBuilder = updateBuilder.Set("receipt_url", *receiptURL)
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
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) selectPayments() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"booking_id",
		"stripe_payment_intent_id",
		"status",
		"amount_cents",
		"currency",
		"receipt_url",
		"metadata",
		"created_at",
		"updated_at",
	).From("payments")
}

func (r *Repository) scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		var payment domain.Payment
		var metadata []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.StripePaymentIntentID,
			&payment.Status,
			&payment.AmountCents,
			&payment.Currency,
			&payment.ReceiptURL,
			&metadata,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &payment.Metadata); err != nil {
				return nil, fmt.Errorf("%w: scanPayments - unmarshal metadata: %v", ErrScanRow, err)
			}
		}

		payment.CreatedAt = createdAt.Time
		payment.UpdatedAt = updatedAt.Time

		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
