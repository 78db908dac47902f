package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils/mapping"
	"github.com/estatedesk/backoffice/internal/utils/pagination"
)

// ledgerBinding maps an aggregate kind to the tables that store it. Table and
// column names are taken from this fixed whitelist only, never from input, so
// interpolating them into SQL is safe.
type ledgerBinding struct {
	aggregateTable string
	aggregateIDCol string
	entryTable     string
	parentCol      string
}

var ledgerBindings = map[domain.AggregateKind]ledgerBinding{
	domain.KindFlatSale: {
		aggregateTable: "flat_sales",
		aggregateIDCol: "sale_id",
		entryTable:     "sale_payments",
		parentCol:      "sale_id",
	},
	domain.KindExpenseBill: {
		aggregateTable: "expense_bills",
		aggregateIDCol: "bill_id",
		entryTable:     "expense_payments",
		parentCol:      "bill_id",
	},
}

func bindingFor(kind domain.AggregateKind) (ledgerBinding, error) {
	b, ok := ledgerBindings[kind]
	if !ok {
		return ledgerBinding{}, fmt.Errorf("%w: unknown aggregate kind %q", apperrors.ErrValidation, kind)
	}
	return b, nil
}

// PgxLedgerRepository implements the balance maintenance protocol on top of
// Postgres. One repository serves both aggregate kinds; the kind selects the
// table binding.
type PgxLedgerRepository struct {
	BaseRepository
	txMaxRetries int
}

// newPgxLedgerRepository creates a new repository for payment entries and
// aggregate balances.
func newPgxLedgerRepository(pool *pgxpool.Pool, txMaxRetries int) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		txMaxRetries:   txMaxRetries,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// lockAggregateBalance reads the aggregate's balance columns under a row lock.
// Every payment mutation goes through this lock, which serializes concurrent
// mutations against the same aggregate.
func (r *PgxLedgerRepository) lockAggregateBalance(ctx context.Context, tx pgx.Tx, b ledgerBinding, tenantID, parentID string) (domain.Balance, error) {
	query := fmt.Sprintf(`
		SELECT total_amount, paid_amount, payment_status
		FROM %s
		WHERE %s = $1 AND tenant_id = $2
		FOR UPDATE;
	`, b.aggregateTable, b.aggregateIDCol)

	var bal domain.Balance
	var status string
	err := tx.QueryRow(ctx, query, parentID, tenantID).Scan(&bal.TotalAmount, &bal.PaidAmount, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Balance{}, apperrors.ErrNotFound
		}
		return domain.Balance{}, apperrors.NewAppError(500, "failed to lock aggregate "+parentID, err)
	}
	bal.Status = domain.PaymentStatus(status)
	return bal, nil
}

// updateAggregateBalance writes the recomputed balance back to the aggregate
// row. Must run in the same transaction that holds the row lock.
func (r *PgxLedgerRepository) updateAggregateBalance(ctx context.Context, tx pgx.Tx, b ledgerBinding, tenantID, parentID string, bal domain.Balance, updatedBy string, now time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET paid_amount = $1, payment_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE %s = $5 AND tenant_id = $6;
	`, b.aggregateTable, b.aggregateIDCol)

	tag, err := tx.Exec(ctx, query, bal.PaidAmount, string(bal.Status), now, updatedBy, parentID, tenantID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance of aggregate "+parentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// lockEntryAmount reads the persisted amount of an entry under a row lock.
// This is the authoritative "before" amount for edits and deletes; caller
// supplied amounts are never trusted for balance arithmetic.
func (r *PgxLedgerRepository) lockEntryAmount(ctx context.Context, tx pgx.Tx, b ledgerBinding, parentID, paymentID string) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT amount
		FROM %s
		WHERE payment_id = $1 AND %s = $2
		FOR UPDATE;
	`, b.entryTable, b.parentCol)

	var amount decimal.Decimal
	err := tx.QueryRow(ctx, query, paymentID, parentID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, apperrors.ErrNotFound
		}
		return decimal.Decimal{}, apperrors.NewAppError(500, "failed to lock payment entry "+paymentID, err)
	}
	return amount, nil
}

// ApplyPayment inserts the entry and adds its amount to the parent's paid
// amount in one transaction. The parent row is locked first, so the
// overpayment check always sees the committed paid amount.
func (r *PgxLedgerRepository) ApplyPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return nil, err
	}

	var result domain.Balance
	err = r.RunInTx(ctx, r.txMaxRetries, func(ctx context.Context, tx pgx.Tx) error {
		bal, err := r.lockAggregateBalance(ctx, tx, b, tenantID, entry.ParentID)
		if err != nil {
			return err
		}

		newBal, err := bal.Apply(entry.Amount)
		if err != nil {
			return err
		}

		modelEntry := mapping.ToModelPaymentEntry(entry)
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (payment_id, %s, amount, payment_date, reference, note, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`, b.entryTable, b.parentCol)
		_, err = tx.Exec(ctx, insertQuery,
			modelEntry.PaymentID,
			modelEntry.ParentID,
			modelEntry.Amount,
			modelEntry.PaymentDate,
			modelEntry.Reference,
			modelEntry.Note,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: payment %s already exists", apperrors.ErrDuplicate, entry.PaymentID)
			}
			return apperrors.NewAppError(500, "failed to insert payment entry "+entry.PaymentID, err)
		}

		if err := r.updateAggregateBalance(ctx, tx, b, tenantID, entry.ParentID, newBal, entry.CreatedBy, entry.CreatedAt); err != nil {
			return err
		}

		result = newBal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// EditPayment replaces an entry's amount and descriptive fields, adjusting
// the parent's paid amount by the difference. The old amount is read from the
// entry row inside the same transaction.
func (r *PgxLedgerRepository) EditPayment(ctx context.Context, kind domain.AggregateKind, tenantID string, entry domain.PaymentEntry) (*domain.Balance, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return nil, err
	}

	var result domain.Balance
	err = r.RunInTx(ctx, r.txMaxRetries, func(ctx context.Context, tx pgx.Tx) error {
		// Lock order is always aggregate first, then entry.
		bal, err := r.lockAggregateBalance(ctx, tx, b, tenantID, entry.ParentID)
		if err != nil {
			return err
		}

		oldAmount, err := r.lockEntryAmount(ctx, tx, b, entry.ParentID, entry.PaymentID)
		if err != nil {
			return err
		}

		newBal, err := bal.AdjustEntry(oldAmount, entry.Amount)
		if err != nil {
			return err
		}

		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET amount = $1, payment_date = $2, reference = $3, note = $4, last_updated_at = $5, last_updated_by = $6
			WHERE payment_id = $7 AND %s = $8;
		`, b.entryTable, b.parentCol)
		_, err = tx.Exec(ctx, updateQuery,
			entry.Amount,
			entry.PaymentDate,
			entry.Reference,
			entry.Note,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
			entry.PaymentID,
			entry.ParentID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update payment entry "+entry.PaymentID, err)
		}

		if err := r.updateAggregateBalance(ctx, tx, b, tenantID, entry.ParentID, newBal, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
			return err
		}

		result = newBal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePayment removes the entry and subtracts its persisted amount from the
// parent's paid amount in one transaction.
func (r *PgxLedgerRepository) DeletePayment(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID, deletedBy string, now time.Time) (*domain.Balance, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return nil, err
	}

	var result domain.Balance
	err = r.RunInTx(ctx, r.txMaxRetries, func(ctx context.Context, tx pgx.Tx) error {
		bal, err := r.lockAggregateBalance(ctx, tx, b, tenantID, parentID)
		if err != nil {
			return err
		}

		amount, err := r.lockEntryAmount(ctx, tx, b, parentID, paymentID)
		if err != nil {
			return err
		}

		deleteQuery := fmt.Sprintf(`
			DELETE FROM %s WHERE payment_id = $1 AND %s = $2;
		`, b.entryTable, b.parentCol)
		tag, err := tx.Exec(ctx, deleteQuery, paymentID, parentID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete payment entry "+paymentID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		newBal := bal.RemoveEntry(amount)
		if err := r.updateAggregateBalance(ctx, tx, b, tenantID, parentID, newBal, deletedBy, now); err != nil {
			return err
		}

		result = newBal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindPaymentByID retrieves one entry of the given parent, scoped to the
// tenant through the parent aggregate.
func (r *PgxLedgerRepository) FindPaymentByID(ctx context.Context, kind domain.AggregateKind, tenantID, parentID, paymentID string) (*domain.PaymentEntry, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT p.payment_id, p.%s, p.amount, p.payment_date, p.reference, p.note,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM %s p
		JOIN %s a ON p.%s = a.%s
		WHERE p.payment_id = $1 AND p.%s = $2 AND a.tenant_id = $3;
	`, b.parentCol, b.entryTable, b.aggregateTable, b.parentCol, b.aggregateIDCol, b.parentCol)

	var m models.PaymentEntry
	err = r.Pool.QueryRow(ctx, query, paymentID, parentID, tenantID).Scan(
		&m.PaymentID,
		&m.ParentID,
		&m.Amount,
		&m.PaymentDate,
		&m.Reference,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+paymentID, err)
	}

	entry := mapping.ToDomainPaymentEntry(m, kind)
	return &entry, nil
}

// ListPaymentsByParent retrieves a paginated list of entries for an aggregate
// using token-based pagination, newest payment date first.
func (r *PgxLedgerRepository) ListPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string, limit int, nextToken *string) ([]domain.PaymentEntry, *string, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return nil, nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := fmt.Sprintf(`
		SELECT p.payment_id, p.%s, p.amount, p.payment_date, p.reference, p.note,
		       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM %s p
		JOIN %s a ON p.%s = a.%s
		WHERE p.%s = $1 AND a.tenant_id = $2
	`, b.parentCol, b.entryTable, b.aggregateTable, b.parentCol, b.aggregateIDCol, b.parentCol)
	orderByClause := `ORDER BY p.payment_date DESC, p.created_at DESC`

	args := []interface{}{parentID, tenantID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastPaymentDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (p.payment_date, p.created_at) < ($3, $4)`
		args = append(args, lastPaymentDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for parent "+parentID, err)
	}
	defer rows.Close()

	entries := make([]models.PaymentEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.PaymentEntry
		err := rows.Scan(
			&m.PaymentID,
			&m.ParentID,
			&m.Amount,
			&m.PaymentDate,
			&m.Reference,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row for parent "+parentID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows for parent "+parentID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainPaymentEntrySlice(entries, kind), nextTokenVal, nil
}

// SumPaymentsByParent returns the true sum of entry amounts for an aggregate.
// Reconciliation uses this to cross-check the denormalized paid amount.
func (r *PgxLedgerRepository) SumPaymentsByParent(ctx context.Context, kind domain.AggregateKind, tenantID, parentID string) (decimal.Decimal, error) {
	b, err := bindingFor(kind)
	if err != nil {
		return decimal.Decimal{}, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM %s p
		JOIN %s a ON p.%s = a.%s
		WHERE p.%s = $1 AND a.tenant_id = $2;
	`, b.entryTable, b.aggregateTable, b.parentCol, b.aggregateIDCol, b.parentCol)

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, parentID, tenantID).Scan(&sum); err != nil {
		return decimal.Decimal{}, apperrors.NewAppError(500, "failed to sum payments for parent "+parentID, err)
	}
	return sum, nil
}
