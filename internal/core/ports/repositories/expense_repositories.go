package repositories

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// ExpenseReader defines read operations for expense bill data.
type ExpenseReader interface {
	FindBillByID(ctx context.Context, tenantID, billID string) (*domain.ExpenseBill, error)
	ListBillsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.ExpenseBill, *string, error)
	ListBillsByProject(ctx context.Context, tenantID, projectID string, limit int, nextToken *string) ([]domain.ExpenseBill, *string, error)
}

// ExpenseWriter defines write operations for expense bill data.
type ExpenseWriter interface {
	SaveBill(ctx context.Context, bill domain.ExpenseBill) error
	UpdateBillDetails(ctx context.Context, bill domain.ExpenseBill) error

	// DeleteBill removes the bill. Fails with apperrors.ErrConflict while
	// payment entries still exist under it.
	DeleteBill(ctx context.Context, tenantID, billID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
