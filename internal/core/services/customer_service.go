package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/middleware"
)

// CustomerService implements customer management.
type CustomerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	tenantSvc    portssvc.TenantSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, tenantSvc portssvc.TenantSvcFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, tenantSvc: tenantSvc}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

// CreateCustomer registers a customer in the tenant. Requires MEMBER role.
func (s *CustomerService) CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		TenantID:   tenantID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID), slog.String("tenant_id", tenantID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer. Requires READONLY role.
func (s *CustomerService) GetCustomerByID(ctx context.Context, tenantID, customerID string, requestingUserID string) (*domain.Customer, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, tenantID, customerID)
}

// ListCustomers retrieves a page of the tenant's customers.
func (s *CustomerService) ListCustomers(ctx context.Context, tenantID string, params dto.ListParams, requestingUserID string) ([]domain.Customer, *string, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.customerRepo.ListCustomersByTenant(ctx, tenantID, params.Limit, params.NextToken)
}

// UpdateCustomer updates a customer's fields. Requires MEMBER role.
func (s *CustomerService) UpdateCustomer(ctx context.Context, tenantID, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return customer, nil
}
