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

type PgxVoucherTypeRepository struct {
	BaseRepository
}

// newPgxVoucherTypeRepository creates a new repository for voucher type data.
func newPgxVoucherTypeRepository(pool *pgxpool.Pool) portsrepo.VoucherTypeRepositoryFacade {
	return &PgxVoucherTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxVoucherTypeRepository implements portsrepo.VoucherTypeRepositoryFacade
var _ portsrepo.VoucherTypeRepositoryFacade = (*PgxVoucherTypeRepository)(nil)

var fullVoucherTypeSelectQuery = `
SELECT
	vt.voucher_type_id, vt.business_id, vt.code, vt.name, vt.nature,
	vt.prefix, vt.auto_numbering, vt.starting_number, vt.is_system,
	vt.created_at, vt.created_by, vt.last_updated_at, vt.last_updated_by
FROM voucher_types vt
`

const insertVoucherTypeQuery = `
	INSERT INTO voucher_types (
		voucher_type_id, business_id, code, name, nature,
		prefix, auto_numbering, starting_number, is_system,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func (r *PgxVoucherTypeRepository) getVoucherTypes(ctx context.Context, filterQuery string, args ...any) ([]domain.VoucherType, error) {
	query := fullVoucherTypeSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query voucher types", err)
	}
	defer rows.Close()

	modelTypes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.VoucherType])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.VoucherType{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect voucher type rows", err)
	}
	return mapping.ToDomainVoucherTypeSlice(modelTypes), nil
}

func (r *PgxVoucherTypeRepository) FindVoucherTypeByID(ctx context.Context, voucherTypeID string) (*domain.VoucherType, error) {
	vts, err := r.getVoucherTypes(ctx, `WHERE vt.voucher_type_id = $1`, voucherTypeID)
	if err != nil {
		return nil, err
	}
	if len(vts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &vts[0], nil
}

func (r *PgxVoucherTypeRepository) FindVoucherTypeByCode(ctx context.Context, businessID, code string) (*domain.VoucherType, error) {
	vts, err := r.getVoucherTypes(ctx, `WHERE vt.business_id = $1 AND vt.code = $2`, businessID, code)
	if err != nil {
		return nil, err
	}
	if len(vts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &vts[0], nil
}

func (r *PgxVoucherTypeRepository) ListVoucherTypes(ctx context.Context, businessID string) ([]domain.VoucherType, error) {
	return r.getVoucherTypes(ctx, `WHERE vt.business_id = $1 ORDER BY vt.code`, businessID)
}

func (r *PgxVoucherTypeRepository) SaveVoucherType(ctx context.Context, vt domain.VoucherType) error {
	m := mapping.ToModelVoucherType(vt)
	_, err := r.Pool.Exec(ctx, insertVoucherTypeQuery, voucherTypeInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("voucher type code " + m.Code + " already exists for this business")
		}
		return apperrors.NewAppError(500, "failed to save voucher type "+m.VoucherTypeID, err)
	}
	return nil
}

// SaveVoucherTypes inserts the default set for a new business in one batch.
func (r *PgxVoucherTypeRepository) SaveVoucherTypes(ctx context.Context, vts []domain.VoucherType) error {
	if len(vts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, vt := range vts {
		m := mapping.ToModelVoucherType(vt)
		batch.Queue(insertVoucherTypeQuery, voucherTypeInsertArgs(m)...)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("voucher type code already exists for this business")
		}
		return apperrors.NewAppError(500, "failed to execute voucher type batch", err)
	}
	return nil
}

func (r *PgxVoucherTypeRepository) UpdateVoucherType(ctx context.Context, vt domain.VoucherType) error {
	m := mapping.ToModelVoucherType(vt)
	query := `
		UPDATE voucher_types
		SET name = $2, prefix = $3, auto_numbering = $4, starting_number = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE voucher_type_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.VoucherTypeID,
		m.Name,
		m.Prefix,
		m.AutoNumbering,
		m.StartingNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher type "+m.VoucherTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func voucherTypeInsertArgs(m models.VoucherType) []any {
	return []any{
		m.VoucherTypeID,
		m.BusinessID,
		m.Code,
		m.Name,
		m.Nature,
		m.Prefix,
		m.AutoNumbering,
		m.StartingNumber,
		m.IsSystem,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}
