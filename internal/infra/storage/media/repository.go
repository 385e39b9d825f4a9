package media

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

// Repository репозиторий медиа-элементов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория медиа
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует загруженный файл в статусе pending
func (r *Repository) Create(ctx context.Context, item *domain.MediaItem) (*domain.MediaItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("media_items").
		Columns(
			"uuid",
			"owner_kind",
			"owner_id",
			"title",
			"file_url",
			"mime_type",
			"size_bytes",
			"status",
			"uploaded_by",
			"uploaded_at",
		).
		Values(
			item.UUID,
			item.OwnerKind,
			item.OwnerID,
			item.Title,
			item.FileURL,
			item.MimeType,
			item.SizeBytes,
			item.Status,
			item.UploadedBy,
			item.UploadedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// GetByID получает медиа-элемент по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MediaItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectMedia().
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

	items, err := r.scanMedia(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrMediaNotFound
	}
	return items[0], nil
}

// MarkStatus переводит медиа-элемент в новый статус пайплайна.
// errorMessage записывается только при переходе в failed.
func (r *Repository) MarkStatus(ctx context.Context, id int64, status domain.MediaStatus, errorMessage *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("media_items").
		Set("status", status).
		Set("error_message", errorMessage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return nil
}

// StoreConversions атомарно записывает результаты транскодирования
// и переводит элемент в статус ready
func (r *Repository) StoreConversions(ctx context.Context, id int64, conversions *domain.Conversions) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	conversionsJSON, err := json.Marshal(conversions)
	if err != nil {
		return fmt.Errorf("%w: StoreConversions - marshal conversions: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("media_items").
		Set("conversions", conversionsJSON).
		Set("status", domain.MediaReady).
		Set("error_message", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: StoreConversions - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: StoreConversions - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: StoreConversions - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return nil
}

func (r *Repository) selectMedia() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"uuid",
		"owner_kind",
		"owner_id",
		"title",
		"file_url",
		"mime_type",
		"size_bytes",
		"status",
		"conversions",
		"error_message",
		"uploaded_by",
		"uploaded_at",
		"created_at",
		"updated_at",
	).From("media_items")
}

func (r *Repository) scanMedia(rows *sql.Rows) ([]*domain.MediaItem, error) {
	items := make([]*domain.MediaItem, 0)

	for rows.Next() {
		var item domain.MediaItem
		var conversions []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.UUID,
			&item.OwnerKind,
			&item.OwnerID,
			&item.Title,
			&item.FileURL,
			&item.MimeType,
			&item.SizeBytes,
			&item.Status,
			&conversions,
			&item.ErrorMessage,
			&item.UploadedBy,
			&item.UploadedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanMedia - scan row: %v", ErrScanRow, err)
		}

		if len(conversions) > 0 {
			item.Conversions = &domain.Conversions{}
			if err := json.Unmarshal(conversions, item.Conversions); err != nil {
				return nil, fmt.Errorf("%w: scanMedia - unmarshal conversions: %v", ErrScanRow, err)
			}
		}

		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanMedia - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
