package services

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/estatedesk/backoffice/internal/dto"
)

// CustomerSvcFacade defines customer management operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, tenantID, customerID string, requestingUserID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, tenantID string, params dto.ListParams, requestingUserID string) ([]domain.Customer, *string, error)
	UpdateCustomer(ctx context.Context, tenantID, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)
}
