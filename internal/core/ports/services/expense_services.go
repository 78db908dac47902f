package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// ExpenseSvcFacade defines expense bill management operations.
type ExpenseSvcFacade interface {
	CreateBill(ctx context.Context, tenantID string, req dto.CreateBillRequest, creatorUserID string) (*domain.ExpenseBill, error)
	GetBillByID(ctx context.Context, tenantID, billID string, requestingUserID string) (*domain.ExpenseBill, error)
	ListBills(ctx context.Context, tenantID string, params dto.ListBillsParams, requestingUserID string) ([]domain.ExpenseBill, *string, error)
	UpdateBillDetails(ctx context.Context, tenantID, billID string, req dto.UpdateBillRequest, requestingUserID string) (*domain.ExpenseBill, error)
	DeleteBill(ctx context.Context, tenantID, billID string, requestingUserID string) error
}
