package repositories

import (
	"context"

	"github.com/estatedesk/backoffice/internal/core/domain"
)

// SaleReader defines read operations for flat sale data.
type SaleReader interface {
	FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.FlatSale, error)
	ListSalesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error)
	ListSalesByProject(ctx context.Context, tenantID, projectID string, limit int, nextToken *string) ([]domain.FlatSale, *string, error)
}

// SaleWriter defines write operations for flat sale data.
type SaleWriter interface {
	SaveSale(ctx context.Context, sale domain.FlatSale) error
	UpdateSaleDetails(ctx context.Context, sale domain.FlatSale) error

	// DeleteSale removes the sale. Fails with apperrors.ErrConflict while
	// payment entries still exist under it; the check and the delete run in
	// one transaction.
	DeleteSale(ctx context.Context, tenantID, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
