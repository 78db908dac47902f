package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres repositories over one shared pool.
// txMaxRetries bounds how often the ledger re-runs a mutation after a
// transient conflict before giving up.
func NewRepositoryProvider(dbPool *pgxpool.Pool, txMaxRetries int) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, txMaxRetries)

	return portsrepo.RepositoryProvider{
		TenantRepo:   tenantRepo,
		UserRepo:     userRepo,
		ProjectRepo:  projectRepo,
		CustomerRepo: customerRepo,
		SaleRepo:     saleRepo,
		ExpenseRepo:  expenseRepo,
		LedgerRepo:   ledgerRepo,
	}
}
