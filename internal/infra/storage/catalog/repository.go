package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий справочника услуг и площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "facility_id", "name", "description", "deposit_cents").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.FacilityID,
		&service.Name,
		&service.Description,
		&service.DepositCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetServiceByID - scan row: %v", ErrScanRow, err)
	}

	return &service, nil
}

// GetFacilityByID получает площадку по ID
func (r *Repository) GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "street", "city", "phone", "created_at").
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityByID - build select query: %v", ErrBuildQuery, err)
	}

	var facility domain.Facility
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.Name,
		&facility.Street,
		&facility.City,
		&facility.Phone,
		&facility.Created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("%w: GetFacilityByID - scan row: %v", ErrScanRow, err)
	}

	return &facility, nil
}
