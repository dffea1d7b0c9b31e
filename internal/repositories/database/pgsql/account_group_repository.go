package pgsql

import (
	"context"
	"errors"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountGroupRepository struct {
	BaseRepository
}

// newPgxAccountGroupRepository creates a new repository for account group data.
func newPgxAccountGroupRepository(pool *pgxpool.Pool) portsrepo.AccountGroupRepositoryFacade {
	return &PgxAccountGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountGroupRepository implements portsrepo.AccountGroupRepositoryFacade
var _ portsrepo.AccountGroupRepositoryFacade = (*PgxAccountGroupRepository)(nil)

var fullAccountGroupSelectQuery = `
SELECT
	g.account_group_id, g.business_id, g.name, g.parent_group_id,
	g.nature, g.affects_gross_profit, g.sequence, g.is_system,
	g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
FROM account_groups g
`

func (r *PgxAccountGroupRepository) getAccountGroups(ctx context.Context, filterQuery string, args ...any) ([]domain.AccountGroup, error) {
	query := fullAccountGroupSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account groups", err)
	}
	defer rows.Close()

	modelGroups, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountGroup])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AccountGroup{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect account group rows", err)
	}
	return mapping.ToDomainAccountGroupSlice(modelGroups), nil
}

func (r *PgxAccountGroupRepository) FindAccountGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	groups, err := r.getAccountGroups(ctx, `WHERE g.account_group_id = $1`, groupID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &groups[0], nil
}

func (r *PgxAccountGroupRepository) ListAccountGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	return r.getAccountGroups(ctx, `WHERE g.business_id = $1 ORDER BY g.sequence, g.name`, businessID)
}

func (r *PgxAccountGroupRepository) SaveAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	m := mapping.ToModelAccountGroup(group)
	query := `
		INSERT INTO account_groups (
			account_group_id, business_id, name, parent_group_id,
			nature, affects_gross_profit, sequence, is_system,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountGroupID,
		m.BusinessID,
		m.Name,
		m.ParentGroupID,
		m.Nature,
		m.AffectsGrossProfit,
		m.Sequence,
		m.IsSystem,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account group " + m.Name + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save account group "+m.AccountGroupID, err)
	}
	return nil
}

func (r *PgxAccountGroupRepository) UpdateAccountGroup(ctx context.Context, group domain.AccountGroup) error {
	m := mapping.ToModelAccountGroup(group)
	query := `
		UPDATE account_groups
		SET name = $2, parent_group_id = $3, nature = $4,
		    affects_gross_profit = $5, sequence = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE account_group_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountGroupID,
		m.Name,
		m.ParentGroupID,
		m.Nature,
		m.AffectsGrossProfit,
		m.Sequence,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("account group " + m.Name + " already exists")
		}
		return apperrors.NewAppError(500, "failed to update account group "+m.AccountGroupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountGroupRepository) DeleteAccountGroup(ctx context.Context, groupID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_groups WHERE account_group_id = $1;`, groupID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account group "+groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
