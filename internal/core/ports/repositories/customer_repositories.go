package repositories

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, tenantID, customerID string) (*domain.Customer, error)
	ListCustomersByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
