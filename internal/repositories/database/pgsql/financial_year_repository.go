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

type PgxFinancialYearRepository struct {
	BaseRepository
}

// newPgxFinancialYearRepository creates a new repository for financial year data.
func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepositoryFacade {
	return &PgxFinancialYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFinancialYearRepository implements portsrepo.FinancialYearRepositoryFacade
var _ portsrepo.FinancialYearRepositoryFacade = (*PgxFinancialYearRepository)(nil)

var fullFinancialYearSelectQuery = `
SELECT
	fy.financial_year_id, fy.business_id, fy.name, fy.start_date, fy.end_date,
	fy.is_current, fy.is_locked,
	fy.created_at, fy.created_by, fy.last_updated_at, fy.last_updated_by
FROM financial_years fy
`

func (r *PgxFinancialYearRepository) getFinancialYears(ctx context.Context, filterQuery string, args ...any) ([]domain.FinancialYear, error) {
	query := fullFinancialYearSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query financial years", err)
	}
	defer rows.Close()

	modelYears, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FinancialYear])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FinancialYear{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect financial year rows", err)
	}
	return mapping.ToDomainFinancialYearSlice(modelYears), nil
}

func (r *PgxFinancialYearRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	years, err := r.getFinancialYears(ctx, `WHERE fy.financial_year_id = $1`, financialYearID)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

func (r *PgxFinancialYearRepository) FindFinancialYearForDate(ctx context.Context, businessID string, date time.Time) (*domain.FinancialYear, error) {
	years, err := r.getFinancialYears(ctx, `WHERE fy.business_id = $1 AND fy.start_date <= $2 AND fy.end_date >= $2`, businessID, date)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

func (r *PgxFinancialYearRepository) FindCurrentFinancialYear(ctx context.Context, businessID string) (*domain.FinancialYear, error) {
	years, err := r.getFinancialYears(ctx, `WHERE fy.business_id = $1 AND fy.is_current = TRUE`, businessID)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

func (r *PgxFinancialYearRepository) ListFinancialYears(ctx context.Context, businessID string) ([]domain.FinancialYear, error) {
	return r.getFinancialYears(ctx, `WHERE fy.business_id = $1 ORDER BY fy.start_date`, businessID)
}

func (r *PgxFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	m := mapping.ToModelFinancialYear(fy)
	query := `
		INSERT INTO financial_years (
			financial_year_id, business_id, name, start_date, end_date,
			is_current, is_locked,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FinancialYearID,
		m.BusinessID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsCurrent,
		m.IsLocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("financial year " + m.Name + " already exists for this business")
		}
		return apperrors.NewAppError(500, "failed to save financial year "+m.FinancialYearID, err)
	}
	return nil
}

// SetCurrentFinancialYear clears the current flag across the business and
// sets it on the target year in one transaction.
func (r *PgxFinancialYearRepository) SetCurrentFinancialYear(ctx context.Context, businessID, financialYearID string, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		UPDATE financial_years
		SET is_current = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE business_id = $1 AND is_current = TRUE;
	`, businessID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear current financial year for business "+businessID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE financial_years
		SET is_current = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE financial_year_id = $1 AND business_id = $2;
	`, financialYearID, businessID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set current financial year "+financialYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFinancialYearRepository) SetFinancialYearLocked(ctx context.Context, financialYearID string, locked bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE financial_years
		SET is_locked = $2, last_updated_at = $3, last_updated_by = $4
		WHERE financial_year_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, financialYearID, locked, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update lock state of financial year "+financialYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
