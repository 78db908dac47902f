package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils/mapping"
	"github.com/estatedesk/backoffice/internal/utils/pagination"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for flat sale data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleSelectColumns = `
	s.sale_id, s.tenant_id, s.project_id, s.customer_id, s.flat_number, s.sale_date, s.note,
	s.total_amount, s.paid_amount, s.payment_status,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
`

func scanSale(row pgx.Row) (models.FlatSale, error) {
	var m models.FlatSale
	err := row.Scan(
		&m.SaleID,
		&m.TenantID,
		&m.ProjectID,
		&m.CustomerID,
		&m.FlatNumber,
		&m.SaleDate,
		&m.Note,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.FlatSale) error {
	m := mapping.ToModelFlatSale(sale)
	query := `
		INSERT INTO flat_sales (
			sale_id, tenant_id, project_id, customer_id, flat_number, sale_date, note,
			total_amount, paid_amount, payment_status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SaleID,
		m.TenantID,
		m.ProjectID,
		m.CustomerID,
		m.FlatNumber,
		m.SaleDate,
		m.Note,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewAppError(409, "sale ID "+sale.SaleID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" {
				return fmt.Errorf("%w: project or customer does not exist in tenant", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save sale "+sale.SaleID, err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.FlatSale, error) {
	query := `SELECT` + saleSelectColumns + `FROM flat_sales s WHERE s.sale_id = $1 AND s.tenant_id = $2;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale "+saleID, err)
	}
	d := mapping.ToDomainFlatSale(m)
	return &d, nil
}

func (r *PgxSaleRepository) listSales(ctx context.Context, filterClause string, filterArgs []interface{}, limit int, nextToken *string) ([]domain.FlatSale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT` + saleSelectColumns + `FROM flat_sales s ` + filterClause
	orderByClause := `ORDER BY s.sale_date DESC, s.created_at DESC`

	args := filterArgs
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastSaleDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (s.sale_date, s.created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastSaleDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	sales := make([]models.FlatSale, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row", err)
		}
		sales = append(sales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	var nextTokenVal *string
	if len(sales) > limit {
		last := sales[limit-1]
		token := pagination.EncodeToken(last.SaleDate, last.CreatedAt)
		nextTokenVal = &token
		sales = sales[:limit]
	}

	return mapping.ToDomainFlatSaleSlice(sales), nextTokenVal, nil
}

func (r *PgxSaleRepository) ListSalesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error) {
	return r.listSales(ctx, `WHERE s.tenant_id = $1`, []interface{}{tenantID}, limit, nextToken)
}

func (r *PgxSaleRepository) ListSalesByProject(ctx context.Context, tenantID, projectID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error) {
	return r.listSales(ctx, `WHERE s.tenant_id = $1 AND s.project_id = $2`, []interface{}{tenantID, projectID}, limit, nextToken)
}

// UpdateSaleDetails updates the descriptive fields of a sale. The balance
// columns are owned by the ledger repository and never touched here.
func (r *PgxSaleRepository) UpdateSaleDetails(ctx context.Context, sale domain.FlatSale) error {
	m := mapping.ToModelFlatSale(sale)
	query := `
		UPDATE flat_sales
		SET customer_id = $1, flat_number = $2, sale_date = $3, note = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $7 AND tenant_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.FlatNumber,
		m.SaleDate,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SaleID,
		m.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sale "+sale.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSale removes a sale that has no payment entries. The existence check
// and the delete run in one transaction with the sale row locked, so a payment
// applied concurrently cannot slip in between.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, tenantID, saleID string) error {
	return r.RunInTx(ctx, defaultTxMaxRetries, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		lockQuery := `SELECT TRUE FROM flat_sales WHERE sale_id = $1 AND tenant_id = $2 FOR UPDATE;`
		if err := tx.QueryRow(ctx, lockQuery, saleID, tenantID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock sale "+saleID, err)
		}

		var paymentCount int
		countQuery := `SELECT COUNT(*) FROM sale_payments WHERE sale_id = $1;`
		if err := tx.QueryRow(ctx, countQuery, saleID).Scan(&paymentCount); err != nil {
			return apperrors.NewAppError(500, "failed to count payments for sale "+saleID, err)
		}
		if paymentCount > 0 {
			return fmt.Errorf("%w: sale %s still has %d payment(s)", apperrors.ErrConflict, saleID, paymentCount)
		}

		deleteQuery := `DELETE FROM flat_sales WHERE sale_id = $1 AND tenant_id = $2;`
		if _, err := tx.Exec(ctx, deleteQuery, saleID, tenantID); err != nil {
			return apperrors.NewAppError(500, "failed to delete sale "+saleID, err)
		}
		return nil
	})
}
