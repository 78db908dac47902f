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

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense bill data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const billSelectColumns = `
	b.bill_id, b.tenant_id, b.project_id, b.vendor_name, b.bill_number, b.bill_date, b.category, b.note,
	b.total_amount, b.paid_amount, b.payment_status,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
`

func scanBill(row pgx.Row) (models.ExpenseBill, error) {
	var m models.ExpenseBill
	err := row.Scan(
		&m.BillID,
		&m.TenantID,
		&m.ProjectID,
		&m.VendorName,
		&m.BillNumber,
		&m.BillDate,
		&m.Category,
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

func (r *PgxExpenseRepository) SaveBill(ctx context.Context, bill domain.ExpenseBill) error {
	m := mapping.ToModelExpenseBill(bill)
	query := `
		INSERT INTO expense_bills (
			bill_id, tenant_id, project_id, vendor_name, bill_number, bill_date, category, note,
			total_amount, paid_amount, payment_status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BillID,
		m.TenantID,
		m.ProjectID,
		m.VendorName,
		m.BillNumber,
		m.BillDate,
		m.Category,
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
				return apperrors.NewAppError(409, "bill ID "+bill.BillID+" already exists", apperrors.ErrDuplicate)
			}
			if pgErr.Code == "23503" {
				return fmt.Errorf("%w: project does not exist in tenant", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save bill "+bill.BillID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindBillByID(ctx context.Context, tenantID, billID string) (*domain.ExpenseBill, error) {
	query := `SELECT` + billSelectColumns + `FROM expense_bills b WHERE b.bill_id = $1 AND b.tenant_id = $2;`
	m, err := scanBill(r.Pool.QueryRow(ctx, query, billID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bill "+billID, err)
	}
	d := mapping.ToDomainExpenseBill(m)
	return &d, nil
}

func (r *PgxExpenseRepository) listBills(ctx context.Context, filterClause string, filterArgs []interface{}, limit int, nextToken *string) ([]domain.ExpenseBill, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT` + billSelectColumns + `FROM expense_bills b ` + filterClause
	orderByClause := `ORDER BY b.bill_date DESC, b.created_at DESC`

	args := filterArgs
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastBillDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (b.bill_date, b.created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, lastBillDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	bills := make([]models.ExpenseBill, 0, fetchLimit)
	for rows.Next() {
		m, err := scanBill(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan bill row", err)
		}
		bills = append(bills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating bill rows", err)
	}

	var nextTokenVal *string
	if len(bills) > limit {
		last := bills[limit-1]
		token := pagination.EncodeToken(last.BillDate, last.CreatedAt)
		nextTokenVal = &token
		bills = bills[:limit]
	}

	return mapping.ToDomainExpenseBillSlice(bills), nextTokenVal, nil
}

func (r *PgxExpenseRepository) ListBillsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.ExpenseBill, *string, error) {
	return r.listBills(ctx, `WHERE b.tenant_id = $1`, []interface{}{tenantID}, limit, nextToken)
}

func (r *PgxExpenseRepository) ListBillsByProject(ctx context.Context, tenantID, projectID string, limit int, nextToken *string) ([]domain.ExpenseBill, *string, error) {
	return r.listBills(ctx, `WHERE b.tenant_id = $1 AND b.project_id = $2`, []interface{}{tenantID, projectID}, limit, nextToken)
}

// UpdateBillDetails updates the descriptive fields of a bill. The balance
// columns are owned by the ledger repository and never touched here.
func (r *PgxExpenseRepository) UpdateBillDetails(ctx context.Context, bill domain.ExpenseBill) error {
	m := mapping.ToModelExpenseBill(bill)
	query := `
		UPDATE expense_bills
		SET vendor_name = $1, bill_number = $2, bill_date = $3, category = $4, note = $5, last_updated_at = $6, last_updated_by = $7
		WHERE bill_id = $8 AND tenant_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.VendorName,
		m.BillNumber,
		m.BillDate,
		m.Category,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BillID,
		m.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bill "+bill.BillID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBill removes a bill that has no payment entries. Same locking scheme
// as sale deletion.
func (r *PgxExpenseRepository) DeleteBill(ctx context.Context, tenantID, billID string) error {
	return r.RunInTx(ctx, defaultTxMaxRetries, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		lockQuery := `SELECT TRUE FROM expense_bills WHERE bill_id = $1 AND tenant_id = $2 FOR UPDATE;`
		if err := tx.QueryRow(ctx, lockQuery, billID, tenantID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock bill "+billID, err)
		}

		var paymentCount int
		countQuery := `SELECT COUNT(*) FROM expense_payments WHERE bill_id = $1;`
		if err := tx.QueryRow(ctx, countQuery, billID).Scan(&paymentCount); err != nil {
			return apperrors.NewAppError(500, "failed to count payments for bill "+billID, err)
		}
		if paymentCount > 0 {
			return fmt.Errorf("%w: bill %s still has %d payment(s)", apperrors.ErrConflict, billID, paymentCount)
		}

		deleteQuery := `DELETE FROM expense_bills WHERE bill_id = $1 AND tenant_id = $2;`
		if _, err := tx.Exec(ctx, deleteQuery, billID, tenantID); err != nil {
			return apperrors.NewAppError(500, "failed to delete bill "+billID, err)
		}
		return nil
	})
}
