package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for business data.
func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBusinessRepository implements portsrepo.BusinessRepositoryFacade
var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

var fullBusinessSelectQuery = `
SELECT
	b.business_id, b.name, b.description, b.currency_code, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM businesses b
`

// getBusinesses runs the base select with a filter clause and collects rows.
func (r *PgxBusinessRepository) getBusinesses(ctx context.Context, filterQuery string, args ...any) ([]domain.Business, error) {
	query := fullBusinessSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query businesses", err)
	}
	defer rows.Close()

	modelBusinesses, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Business])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Business{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect business rows", err)
	}
	return mapping.ToDomainBusinessSlice(modelBusinesses), nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	businesses, err := r.getBusinesses(ctx, `WHERE b.business_id = $1`, businessID)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &businesses[0], nil
}

func (r *PgxBusinessRepository) ListBusinessesByUserID(ctx context.Context, userID string, includeInactive bool) ([]domain.Business, error) {
	filter := `
	JOIN user_businesses ub ON ub.business_id = b.business_id
	WHERE ub.user_id = $1 AND ub.role <> 'REMOVED'`
	if !includeInactive {
		filter += ` AND b.is_active = TRUE`
	}
	filter += ` ORDER BY b.name`
	return r.getBusinesses(ctx, filter, userID)
}

func (r *PgxBusinessRepository) FindUserBusinessRole(ctx context.Context, userID, businessID string) (*domain.UserBusiness, error) {
	query := `
		SELECT ub.user_id, u.name AS user_name, ub.business_id, ub.role, ub.joined_at
		FROM user_businesses ub
		JOIN users u ON u.user_id = ub.user_id
		WHERE ub.user_id = $1 AND ub.business_id = $2;
	`
	var m models.UserBusiness
	err := r.Pool.QueryRow(ctx, query, userID, businessID).Scan(
		&m.UserID,
		&m.UserName,
		&m.BusinessID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}

	membership := mapping.ToDomainUserBusiness(m)
	return &membership, nil
}

func (r *PgxBusinessRepository) ListBusinessUsers(ctx context.Context, businessID string) ([]domain.UserBusiness, error) {
	query := `
		SELECT ub.user_id, u.name AS user_name, ub.business_id, ub.role, ub.joined_at
		FROM user_businesses ub
		JOIN users u ON u.user_id = ub.user_id
		WHERE ub.business_id = $1 AND ub.role <> 'REMOVED'
		ORDER BY ub.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of business "+businessID, err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.UserBusiness])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}
	return mapping.ToDomainUserBusinessSlice(memberships), nil
}

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	query := `
		INSERT INTO businesses (
			business_id, name, description, currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.Description,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("business ID " + m.BusinessID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save business "+m.BusinessID, err)
	}
	return nil
}

func (r *PgxBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	query := `
		UPDATE businesses
		SET name = $2, description = $3, currency_code = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE business_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.Description,
		m.CurrencyCode,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update business "+m.BusinessID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBusinessRepository) SaveUserBusiness(ctx context.Context, membership domain.UserBusiness) error {
	query := `
		INSERT INTO user_businesses (user_id, business_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, business_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.BusinessID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save membership of user "+membership.UserID+" in business "+membership.BusinessID, err)
	}
	return nil
}

func (r *PgxBusinessRepository) UpdateUserBusinessRole(ctx context.Context, userID, businessID string, role domain.UserBusinessRole, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE user_businesses
		SET role = $3
		WHERE user_id = $1 AND business_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, businessID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role of user "+userID+" in business "+businessID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBusinessRepository) SetBusinessActive(ctx context.Context, businessID string, active bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE businesses
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE business_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, businessID, active, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to toggle business "+businessID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
