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

// SaleService implements flat sale management. Payment mutations against a
// sale's balance go through the payment service, never through here.
type SaleService struct {
	saleRepo     portsrepo.SaleRepositoryFacade
	projectRepo  portsrepo.ProjectRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	tenantSvc    portssvc.TenantSvcFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, tenantSvc portssvc.TenantSvcFacade) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		tenantSvc:    tenantSvc,
	}
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

// CreateSale registers a flat sale with an unpaid balance. Requires MEMBER
// role. Project and customer must belong to the same tenant.
func (s *SaleService) CreateSale(ctx context.Context, tenantID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.FlatSale, error) {
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
	if _, err := s.customerRepo.FindCustomerByID(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now()
	sale := domain.FlatSale{
		SaleID:     uuid.NewString(),
		TenantID:   tenantID,
		ProjectID:  req.ProjectID,
		CustomerID: req.CustomerID,
		FlatNumber: req.FlatNumber,
		SaleDate:   req.SaleDate,
		Note:       req.Note,
		Balance:    domain.NewBalance(req.TotalAmount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	logger.Info("Sale created", slog.String("sale_id", sale.SaleID), slog.String("tenant_id", tenantID), slog.String("total_amount", sale.TotalAmount.String()))
	return &sale, nil
}

// GetSaleByID retrieves a sale. Requires READONLY role.
func (s *SaleService) GetSaleByID(ctx context.Context, tenantID, saleID string, requestingUserID string) (*domain.FlatSale, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.saleRepo.FindSaleByID(ctx, tenantID, saleID)
}

// ListSales retrieves a page of the tenant's sales, optionally filtered by
// project.
func (s *SaleService) ListSales(ctx context.Context, tenantID string, params dto.ListSalesParams, requestingUserID string) ([]domain.FlatSale, *string, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if params.ProjectID != nil && *params.ProjectID != "" {
		return s.saleRepo.ListSalesByProject(ctx, tenantID, *params.ProjectID, params.Limit, params.NextToken)
	}
	return s.saleRepo.ListSalesByTenant(ctx, tenantID, params.Limit, params.NextToken)
}

// UpdateSaleDetails updates descriptive sale fields. The total amount and the
// balance columns are out of reach here. Requires MEMBER role.
func (s *SaleService) UpdateSaleDetails(ctx context.Context, tenantID, saleID string, req dto.UpdateSaleRequest, requestingUserID string) (*domain.FlatSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	if req.FlatNumber != nil {
		sale.FlatNumber = *req.FlatNumber
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	if req.Note != nil {
		sale.Note = *req.Note
	}
	sale.LastUpdatedAt = time.Now()
	sale.LastUpdatedBy = requestingUserID

	if err := s.saleRepo.UpdateSaleDetails(ctx, *sale); err != nil {
		logger.Error("Failed to update sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to update sale %s: %w", saleID, err)
	}
	return sale, nil
}

// DeleteSale removes a sale with no payment entries. Requires ADMIN role.
// Sales with entries fail with apperrors.ErrConflict; the entries must be
// deleted first so the balance trail stays auditable.
func (s *SaleService) DeleteSale(ctx context.Context, tenantID, saleID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.saleRepo.DeleteSale(ctx, tenantID, saleID); err != nil {
		logger.Warn("Failed to delete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return err
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID), slog.String("tenant_id", tenantID))
	return nil
}
