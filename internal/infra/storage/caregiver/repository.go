package caregiver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nordeim/Elderly-Care-Center/internal/domain"
	"github.com/nordeim/Elderly-Care-Center/pkg/psqlbuilder"
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// Repository репозиторий профилей опекунов и клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfileByID получает профиль опекуна вместе с контактами
// учетной записи (email и телефон для доставки уведомлений)
func (r *Repository) GetProfileByID(ctx context.Context, id int64) (*domain.CaregiverProfile, *domain.User, error) {
	return r.getProfile(ctx, squirrel.Eq{"cp.id": id})
}

// GetProfileByUserID получает профиль опекуна по ID учетной записи
func (r *Repository) GetProfileByUserID(ctx context.Context, userID int64) (*domain.CaregiverProfile, *domain.User, error) {
	return r.getProfile(ctx, squirrel.Eq{"cp.user_id": userID})
}

func (r *Repository) getProfile(ctx context.Context, where squirrel.Eq) (*domain.CaregiverProfile, *domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectProfiles().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getProfile - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getProfile - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles, users, err := r.scanProfiles(rows)
	if err != nil {
		return nil, nil, err
	}
	if len(profiles) == 0 {
		return nil, nil, ErrProfileNotFound
	}
	return profiles[0], users[0], nil
}

// ListProfilesByClientID получает профили опекунов, привязанные к клиенту.
// По ним планируются напоминания при подтверждении бронирования.
func (r *Repository) ListProfilesByClientID(ctx context.Context, clientID int64) ([]*domain.CaregiverProfile, []*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectProfiles().
		Where(squirrel.Eq{"cp.client_id": clientID}).
		OrderBy("cp.id ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ListProfilesByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ListProfilesByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanProfiles(rows)
}

// GetClientByID получает клиента по ID
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectClients().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - build select query: %v", ErrBuildQuery, err)
	}

	client, err := r.scanClient(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// ResolveClientByEmail находит клиента по email либо создает нового
// из переданных данных. Email — ключ дедупликации: у существующей
// записи входные данные ничего не перезаписывают.
func (r *Repository) ResolveClientByEmail(ctx context.Context, input *domain.Client) (*domain.Client, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.selectClients().Where(squirrel.Eq{"email": input.Email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveClientByEmail - build select query: %v", ErrBuildQuery, err)
	}

	client, err := r.scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	language := input.LanguagePreference
	if language == "" {
		language = "en"
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("clients").
		Columns("first_name", "last_name", "email", "phone", "language_preference", "consent_version").
		Values(input.FirstName, input.LastName, input.Email, input.Phone, language, input.ConsentVersion).
		Suffix("RETURNING id, first_name, last_name, email, phone, language_preference, consent_version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveClientByEmail - build insert query: %v", ErrBuildQuery, err)
	}

	client, err = r.scanClient(executor.QueryRowContext(ctx, insertQuery, insertArgs...))
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *Repository) selectProfiles() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"cp.id",
		"cp.user_id",
		"cp.client_id",
		"cp.preferred_contact_method",
		"cp.timezone",
		"cp.sms_opt_in",
		"cp.preferences",
		"cp.created_at",
		"cp.updated_at",
		"u.id",
		"u.name",
		"u.email",
		"u.phone",
	).
		From("caregiver_profiles cp").
		Join("users u ON u.id = cp.user_id")
}

func (r *Repository) selectClients() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"language_preference",
		"consent_version",
		"created_at",
		"updated_at",
	).From("clients")
}

func (r *Repository) scanProfiles(rows *sql.Rows) ([]*domain.CaregiverProfile, []*domain.User, error) {
	profiles := make([]*domain.CaregiverProfile, 0)
	users := make([]*domain.User, 0)

	for rows.Next() {
		var profile domain.CaregiverProfile
		var user domain.User
		var preferences []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.ClientID,
			&profile.PreferredContactMethod,
			&profile.Timezone,
			&profile.SMSOptIn,
			&preferences,
			&createdAt,
			&updatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: scanProfiles - scan row: %v", ErrScanRow, err)
		}

		if len(preferences) > 0 {
			if err := json.Unmarshal(preferences, &profile.Preferences); err != nil {
				return nil, nil, fmt.Errorf("%w: scanProfiles - unmarshal preferences: %v", ErrScanRow, err)
			}
		}

		profile.CreatedAt = createdAt.Time
		profile.UpdatedAt = updatedAt.Time

		profiles = append(profiles, &profile)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: scanProfiles - rows error: %v", ErrScanRow, err)
	}

	return profiles, users, nil
}

func (r *Repository) scanClient(row *sql.Row) (*domain.Client, error) {
	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Email,
		&client.Phone,
		&client.LanguagePreference,
		&client.ConsentVersion,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanClient - scan row: %v", ErrScanRow, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
