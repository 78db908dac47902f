package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
)

// ExpenseService implements expense bill management. Payments against a
// bill's balance go through the payment service.
type ExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
	tenantSvc   portssvc.TenantSvcFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade, tenantSvc portssvc.TenantSvcFacade) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		tenantSvc:   tenantSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// CreateBill registers an expense bill with an unpaid balance. Requires
// MEMBER role.
func (s *ExpenseService) CreateBill(ctx context.Context, tenantID string, req dto.CreateBillRequest, creatorUserID string) (*domain.ExpenseBill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.projectRepo.FindProjectByID(ctx, tenantID, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	bill := domain.ExpenseBill{
		BillID:     uuid.NewString(),
		TenantID:   tenantID,
		ProjectID:  req.ProjectID,
		VendorName: req.VendorName,
		BillNumber: req.BillNumber,
		BillDate:   req.BillDate,
		Category:   req.Category,
		Note:       req.Note,
		Balance:    domain.NewBalance(req.TotalAmount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("tenant_id", tenantID), slog.String("total_amount", bill.TotalAmount.String()))
	return &bill, nil
}

// GetBillByID retrieves a bill. Requires READONLY role.
func (s *ExpenseService) GetBillByID(ctx context.Context, tenantID, billID string, requestingUserID string) (*domain.ExpenseBill, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindBillByID(ctx, tenantID, billID)
}

// ListBills retrieves a page of the tenant's bills, optionally filtered by
// project.
func (s *ExpenseService) ListBills(ctx context.Context, tenantID string, params dto.ListBillsParams, requestingUserID string) ([]domain.ExpenseBill, *string, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if params.ProjectID != nil && *params.ProjectID != "" {
		return s.expenseRepo.ListBillsByProject(ctx, tenantID, *params.ProjectID, params.Limit, params.NextToken)
	}
	return s.expenseRepo.ListBillsByTenant(ctx, tenantID, params.Limit, params.NextToken)
}

// UpdateBillDetails updates descriptive bill fields. Requires MEMBER role.
func (s *ExpenseService) UpdateBillDetails(ctx context.Context, tenantID, billID string, req dto.UpdateBillRequest, requestingUserID string) (*domain.ExpenseBill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	bill, err := s.expenseRepo.FindBillByID(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if req.VendorName != nil {
		bill.VendorName = *req.VendorName
	}
	if req.BillNumber != nil {
		bill.BillNumber = *req.BillNumber
	}
	if req.BillDate != nil {
		bill.BillDate = *req.BillDate
	}
	if req.Category != nil {
		bill.Category = *req.Category
	}
	if req.Note != nil {
		bill.Note = *req.Note
	}
	bill.LastUpdatedAt = time.Now()
	bill.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateBillDetails(ctx, *bill); err != nil {
		logger.Error("Failed to update bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill %s: %w", billID, err)
	}
	return bill, nil
}

// DeleteBill removes a bill with no payment entries. Requires ADMIN role.
func (s *ExpenseService) DeleteBill(ctx context.Context, tenantID, billID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.expenseRepo.DeleteBill(ctx, tenantID, billID); err != nil {
		logger.Warn("Failed to delete bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return err
	}

	logger.Info("Bill deleted", slog.String("bill_id", billID), slog.String("tenant_id", tenantID))
	return nil
}
