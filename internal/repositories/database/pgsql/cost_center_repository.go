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

type PgxCostCenterRepository struct {
	BaseRepository
}

// newPgxCostCenterRepository creates a new repository for cost center data.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryFacade {
	return &PgxCostCenterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCostCenterRepository implements portsrepo.CostCenterRepositoryFacade
var _ portsrepo.CostCenterRepositoryFacade = (*PgxCostCenterRepository)(nil)

var fullCostCenterSelectQuery = `
SELECT
	c.cost_center_id, c.business_id, c.name, c.code, c.parent_id, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM cost_centers c
`

func (r *PgxCostCenterRepository) getCostCenters(ctx context.Context, filterQuery string, args ...any) ([]domain.CostCenter, error) {
	query := fullCostCenterSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost centers", err)
	}
	defer rows.Close()

	modelCostCenters, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CostCenter])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CostCenter{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect cost center rows", err)
	}
	return mapping.ToDomainCostCenterSlice(modelCostCenters), nil
}

func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	costCenters, err := r.getCostCenters(ctx, `WHERE c.cost_center_id = $1`, costCenterID)
	if err != nil {
		return nil, err
	}
	if len(costCenters) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &costCenters[0], nil
}

func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, businessID string, activeOnly bool) ([]domain.CostCenter, error) {
	filter := `WHERE c.business_id = $1`
	if activeOnly {
		filter += ` AND c.is_active = TRUE`
	}
	filter += ` ORDER BY c.name`
	return r.getCostCenters(ctx, filter, businessID)
}

func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)
	query := `
		INSERT INTO cost_centers (
			cost_center_id, business_id, name, code, parent_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CostCenterID,
		m.BusinessID,
		m.Name,
		m.Code,
		m.ParentID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("cost center code already in use for this business")
		}
		return apperrors.NewAppError(500, "failed to save cost center "+m.CostCenterID, err)
	}
	return nil
}

func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)
	query := `
		UPDATE cost_centers
		SET name = $2, code = $3, parent_id = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE cost_center_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CostCenterID,
		m.Name,
		m.Code,
		m.ParentID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("cost center code already in use for this business")
		}
		return apperrors.NewAppError(500, "failed to update cost center "+m.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCostCenterRepository) DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error {
	query := `
		UPDATE cost_centers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE cost_center_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, costCenterID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate cost center "+costCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
